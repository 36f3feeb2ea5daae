//go:build linux

package platform

import (
	"fmt"
	"os"

	"github.com/dshills/macrokey/internal/action"
)

// openDefaultCapture prefers evdev, which sees input on any display
// server, then falls back to the gohook X11 hook.
func openDefaultCapture(opts Options) (Capture, error) {
	c, err := newEvdevCapture(opts.Log)
	if err == nil {
		return c, nil
	}
	opts.Log.Warn("evdev capture unavailable, falling back to gohook", map[string]any{
		"error": err.Error(),
	})
	if os.Getenv("DISPLAY") == "" {
		return nil, fmt.Errorf("%w: no evdev access and no X11 display", ErrBackendUnavailable)
	}
	return newGohookCapture(opts.Log)
}

func newDefaultExecutor(log action.Logger) (action.Executor, error) {
	e, err := NewUinputExecutor(log)
	if err == nil {
		return e, nil
	}
	log.Warn("uinput unavailable, falling back to xdotool", map[string]any{
		"error": err.Error(),
	})
	return NewXdotoolExecutor(log)
}

func newNamedExecutor(name string, log action.Logger) (action.Executor, error) {
	switch name {
	case "uinput":
		return NewUinputExecutor(log)
	case "xdotool":
		return NewXdotoolExecutor(log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}
