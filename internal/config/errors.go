package config

import "errors"

var (
	// ErrParse indicates the configuration file could not be parsed.
	ErrParse = errors.New("config parse error")

	// ErrNoKeys indicates a binding with no hotkey spec.
	ErrNoKeys = errors.New("binding has no keys")

	// ErrNoAction indicates a binding with no action.
	ErrNoAction = errors.New("binding has no action")

	// ErrUnknownKey indicates an unrecognized key name.
	ErrUnknownKey = errors.New("unknown key")

	// ErrUnknownButton indicates an unrecognized mouse button name.
	ErrUnknownButton = errors.New("unknown mouse button")

	// ErrUnknownActionType indicates an unrecognized action type.
	ErrUnknownActionType = errors.New("unknown action type")

	// ErrScript indicates a Lua binding script failed to run.
	ErrScript = errors.New("script error")
)
