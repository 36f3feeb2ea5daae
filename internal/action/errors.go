package action

import "errors"

// Action errors.
var (
	// ErrNilAction indicates a nil action node.
	ErrNilAction = errors.New("action: nil action")

	// ErrInvalidKind indicates an unrecognized action kind.
	ErrInvalidKind = errors.New("action: invalid kind")

	// ErrNoKey indicates a key action without a key.
	ErrNoKey = errors.New("action: no key")

	// ErrNoButton indicates a click action without a button.
	ErrNoButton = errors.New("action: no button")

	// ErrEmptyText indicates a text action with an empty string.
	ErrEmptyText = errors.New("action: empty text")

	// ErrNegativeDuration indicates a negative delay duration.
	ErrNegativeDuration = errors.New("action: negative duration")

	// ErrInvalidRange indicates a random delay with min greater than max.
	ErrInvalidRange = errors.New("action: invalid delay range")

	// ErrNoInterval indicates a repeat action without a positive interval.
	ErrNoInterval = errors.New("action: repeat interval must be positive")

	// ErrNestedRepeat indicates a repeat action nested inside another.
	ErrNestedRepeat = errors.New("action: nested repeat-while-held")

	// ErrExecutorFailure wraps an executor primitive failure.
	ErrExecutorFailure = errors.New("action: executor failure")
)
