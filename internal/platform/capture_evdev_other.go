//go:build !linux

package platform

import (
	"fmt"

	"github.com/dshills/macrokey/internal/action"
)

func newEvdevCapture(action.Logger) (Capture, error) {
	return nil, fmt.Errorf("%w: evdev requires Linux", ErrBackendUnavailable)
}
