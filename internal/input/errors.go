package input

import "errors"

var (
	// ErrEmptySpec indicates an empty hotkey specification.
	ErrEmptySpec = errors.New("empty hotkey spec")

	// ErrUnknownModifier indicates an unrecognized modifier name.
	ErrUnknownModifier = errors.New("unknown modifier")

	// ErrUnknownTrigger indicates an unrecognized key or button name.
	ErrUnknownTrigger = errors.New("unknown trigger")
)
