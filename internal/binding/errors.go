package binding

import "errors"

// Registry errors.
var (
	// ErrEmptyTrigger indicates a hotkey without a trigger.
	ErrEmptyTrigger = errors.New("binding: hotkey has no trigger")
)
