package engine

import "errors"

// Processor errors.
var (
	// ErrStreamClosed indicates the input capture stream terminated.
	// This ends the run loop; the process is shutting down.
	ErrStreamClosed = errors.New("engine: input stream closed")
)
