package action

import (
	"github.com/dshills/macrokey/internal/input/key"
	"github.com/dshills/macrokey/internal/input/mouse"
)

// State is the direction of a simulated key or button transition.
type State uint8

const (
	// Press transitions a key or button to pressed.
	Press State = iota
	// Release transitions a key or button to released.
	Release
)

// String returns a string representation of the state.
func (s State) String() string {
	if s == Press {
		return "press"
	}
	return "release"
}

// Executor is the platform capability for injecting synthetic input.
// Implementations live in internal/platform; tests use Recorder.
// Idempotent semantics are the caller's responsibility.
type Executor interface {
	// SimulateKey simulates a key press or release.
	SimulateKey(k key.Key, state State) error

	// SimulateMouse simulates a mouse button press or release.
	SimulateMouse(b mouse.Button, state State) error

	// MouseMoveAbs moves the pointer to an absolute position.
	MouseMoveAbs(x, y int) error

	// MouseMoveRel moves the pointer by a relative offset.
	MouseMoveRel(dx, dy int) error
}

// Logger receives diagnostic output from the interpreter. It is a narrow
// view of the application logger so this package does not depend on it.
type Logger interface {
	Debug(msg string, fields map[string]any)
	Warn(msg string, fields map[string]any)
	Error(msg string, fields map[string]any)
}

// NopLogger discards all log output.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(string, map[string]any) {}

// Warn implements Logger.
func (NopLogger) Warn(string, map[string]any) {}

// Error implements Logger.
func (NopLogger) Error(string, map[string]any) {}
