package platform

import (
	"fmt"

	"github.com/dshills/macrokey/internal/action"
	"github.com/dshills/macrokey/internal/input"
)

// Capture observes global keyboard and mouse activity.
type Capture interface {
	// Name returns the backend name for logging.
	Name() string

	// Events returns the stream of observed events. The channel is
	// closed when the capture is closed or fails.
	Events() <-chan input.Event

	// Close stops capturing. Safe to call more than once.
	Close() error
}

// Options configures backend selection.
type Options struct {
	// Backend names the capture backend: "auto", "gohook", "evdev" or
	// "reserve".
	Backend string

	// Hotkeys are the bound hotkeys. Only the "reserve" backend uses
	// them; it registers each with the OS instead of observing all
	// input.
	Hotkeys []input.Hotkey

	// Log receives backend diagnostics. Nil disables logging.
	Log action.Logger
}

// OpenCapture opens the named capture backend.
func OpenCapture(opts Options) (Capture, error) {
	if opts.Log == nil {
		opts.Log = action.NopLogger{}
	}

	switch opts.Backend {
	case "", "auto":
		return openDefaultCapture(opts)
	case "gohook":
		return newGohookCapture(opts.Log)
	case "evdev":
		return newEvdevCapture(opts.Log)
	case "reserve":
		return newReserveCapture(opts.Hotkeys, opts.Log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
	}
}

// NewExecutor opens the named injection backend. "auto" picks the
// platform default.
func NewExecutor(name string, log action.Logger) (action.Executor, error) {
	if log == nil {
		log = action.NopLogger{}
	}

	switch name {
	case "", "auto":
		return newDefaultExecutor(log)
	default:
		return newNamedExecutor(name, log)
	}
}
