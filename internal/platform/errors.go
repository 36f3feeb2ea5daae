package platform

import "errors"

var (
	// ErrBackendUnavailable indicates a backend cannot run on this system.
	ErrBackendUnavailable = errors.New("backend not available on this system")

	// ErrUnknownBackend indicates an unrecognized backend name.
	ErrUnknownBackend = errors.New("unknown backend")

	// ErrCaptureClosed indicates the capture backend has been closed.
	ErrCaptureClosed = errors.New("capture closed")

	// ErrUnmappedKey indicates a key with no code on this platform.
	ErrUnmappedKey = errors.New("key not mapped on this platform")

	// ErrUnmappedButton indicates a button with no code on this platform.
	ErrUnmappedButton = errors.New("mouse button not mapped on this platform")
)
