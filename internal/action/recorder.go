package action

import (
	"fmt"
	"sync"

	"github.com/dshills/macrokey/internal/input/key"
	"github.com/dshills/macrokey/internal/input/mouse"
)

// Call records one executor primitive invocation.
type Call struct {
	Op     string // "key", "mouse", "move-abs", "move-rel"
	Key    key.Key
	Button mouse.Button
	State  State
	X, Y   int
}

// String returns a compact form like "press:a" or "click-release:right".
func (c Call) String() string {
	switch c.Op {
	case "key":
		return fmt.Sprintf("%s:%s", c.State, c.Key)
	case "mouse":
		return fmt.Sprintf("%s:%s", c.State, c.Button)
	case "move-abs":
		return fmt.Sprintf("move-abs:%d,%d", c.X, c.Y)
	case "move-rel":
		return fmt.Sprintf("move-rel:%d,%d", c.X, c.Y)
	default:
		return c.Op
	}
}

// Recorder is an Executor that records every primitive call in order.
// It backs the daemon's dry-run mode and the package tests. FailOn may be
// set to make a specific call fail.
type Recorder struct {
	mu    sync.Mutex
	calls []Call

	// FailOn makes any matching call return an error. Nil means all
	// calls succeed.
	FailOn func(Call) error
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) record(c Call) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailOn != nil {
		if err := r.FailOn(c); err != nil {
			return err
		}
	}
	r.calls = append(r.calls, c)
	return nil
}

// SimulateKey implements Executor.
func (r *Recorder) SimulateKey(k key.Key, state State) error {
	return r.record(Call{Op: "key", Key: k, State: state})
}

// SimulateMouse implements Executor.
func (r *Recorder) SimulateMouse(b mouse.Button, state State) error {
	return r.record(Call{Op: "mouse", Button: b, State: state})
}

// MouseMoveAbs implements Executor.
func (r *Recorder) MouseMoveAbs(x, y int) error {
	return r.record(Call{Op: "move-abs", X: x, Y: y})
}

// MouseMoveRel implements Executor.
func (r *Recorder) MouseMoveRel(dx, dy int) error {
	return r.record(Call{Op: "move-rel", X: dx, Y: dy})
}

// Calls returns a snapshot of the recorded calls in order.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Strings returns the recorded calls in compact string form.
func (r *Recorder) Strings() []string {
	calls := r.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}

// Reset clears the recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}

// Len returns the number of recorded calls.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}
