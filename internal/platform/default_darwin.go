//go:build darwin

package platform

import (
	"fmt"

	"github.com/dshills/macrokey/internal/action"
)

func openDefaultCapture(opts Options) (Capture, error) {
	return newGohookCapture(opts.Log)
}

func newDefaultExecutor(log action.Logger) (action.Executor, error) {
	return NewOsascriptExecutor(log)
}

func newNamedExecutor(name string, log action.Logger) (action.Executor, error) {
	switch name {
	case "osascript":
		return NewOsascriptExecutor(log)
	case "xdotool":
		return NewXdotoolExecutor(log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}
