package action

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/dshills/macrokey/internal/input/key"
)

// Interpreter executes action trees against an Executor.
//
// Execution is recursive descent. The only suspension points are Delay,
// RandomDelay, and the inter-iteration pause inside RepeatWhileHeld;
// cancellation takes effect at a suspension boundary and never interrupts a
// primitive call.
type Interpreter struct {
	exec Executor
	log  Logger

	// randDur draws a duration uniformly from [min, max]. Overridable
	// for deterministic tests.
	randDur func(min, max time.Duration) time.Duration
}

// NewInterpreter creates an interpreter over the given executor.
func NewInterpreter(exec Executor, log Logger) *Interpreter {
	if log == nil {
		log = NopLogger{}
	}
	return &Interpreter{
		exec:    exec,
		log:     log,
		randDur: uniformDuration,
	}
}

// Run executes an action tree to completion. The first primitive failure
// aborts the remaining work and is returned, attributable to the failing
// node. A RepeatWhileHeld node is executed via RunRepeat.
func (in *Interpreter) Run(ctx context.Context, a *Action) error {
	if a != nil && a.Kind == KindRepeatWhileHeld {
		return in.RunRepeat(ctx, a)
	}
	return in.run(ctx, in.exec, a)
}

func (in *Interpreter) run(ctx context.Context, exec Executor, a *Action) error {
	if a == nil {
		return ErrNilAction
	}

	switch a.Kind {
	case KindPressKey:
		if err := exec.SimulateKey(a.Key, Press); err != nil {
			return fmt.Errorf("press %s: %w: %v", a.Key, ErrExecutorFailure, err)
		}
		if err := exec.SimulateKey(a.Key, Release); err != nil {
			return fmt.Errorf("press %s: %w: %v", a.Key, ErrExecutorFailure, err)
		}
		return nil

	case KindClick:
		if err := exec.SimulateMouse(a.Button, Press); err != nil {
			return fmt.Errorf("click %s: %w: %v", a.Button, ErrExecutorFailure, err)
		}
		if err := exec.SimulateMouse(a.Button, Release); err != nil {
			return fmt.Errorf("click %s: %w: %v", a.Button, ErrExecutorFailure, err)
		}
		return nil

	case KindHoldKey:
		if err := exec.SimulateKey(a.Key, Press); err != nil {
			return fmt.Errorf("hold %s: %w: %v", a.Key, ErrExecutorFailure, err)
		}
		return nil

	case KindReleaseKey:
		if err := exec.SimulateKey(a.Key, Release); err != nil {
			return fmt.Errorf("release %s: %w: %v", a.Key, ErrExecutorFailure, err)
		}
		return nil

	case KindTypeText:
		return in.typeText(exec, a.Text)

	case KindDelay:
		return sleep(ctx, a.Min)

	case KindRandomDelay:
		return sleep(ctx, in.randDur(a.Min, a.Max))

	case KindSequence:
		for i, step := range a.Steps {
			if err := in.run(ctx, exec, step); err != nil {
				return fmt.Errorf("sequence step %d (%s): %w", i, step.Kind, err)
			}
		}
		return nil

	case KindRepeatWhileHeld:
		// Repeats are only valid at top level; Validate rejects nesting.
		return ErrNestedRepeat

	default:
		return fmt.Errorf("%w: kind %d", ErrInvalidKind, a.Kind)
	}
}

// RunRepeat executes a RepeatWhileHeld action: the steps as a sequence,
// then a pause of Interval, until ctx is cancelled. Cancellation is normal
// termination and returns nil. Any key a HoldKey step left pressed when the
// loop ends is released before returning.
func (in *Interpreter) RunRepeat(ctx context.Context, a *Action) error {
	if a == nil {
		return ErrNilAction
	}
	if a.Kind != KindRepeatWhileHeld {
		return fmt.Errorf("%w: kind %s is not repeat-while-held", ErrInvalidKind, a.Kind)
	}

	tracked := &holdTracker{Executor: in.exec}
	defer tracked.releaseAll(in.log)

	body := &Action{Kind: KindSequence, Steps: a.Steps}
	for {
		if err := in.run(ctx, tracked, body); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if err := sleep(ctx, a.Interval); err != nil {
			return nil
		}
	}
}

// sleep suspends the current branch until d elapses or ctx is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			return nil
		}
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func uniformDuration(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)+1))
}

// holdTracker wraps an executor and remembers keys pressed without a
// matching release, so a cancelled repeat never strands a held key at the
// OS level.
type holdTracker struct {
	Executor
	mu   sync.Mutex
	held []key.Key
}

func (h *holdTracker) SimulateKey(k key.Key, state State) error {
	err := h.Executor.SimulateKey(k, state)
	if err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if state == Press {
		h.held = append(h.held, k)
	} else {
		for i := len(h.held) - 1; i >= 0; i-- {
			if h.held[i] == k {
				h.held = append(h.held[:i], h.held[i+1:]...)
				break
			}
		}
	}
	return nil
}

// releaseAll releases any keys still pressed, most recent first.
func (h *holdTracker) releaseAll(log Logger) {
	h.mu.Lock()
	held := h.held
	h.held = nil
	h.mu.Unlock()

	for i := len(held) - 1; i >= 0; i-- {
		if err := h.Executor.SimulateKey(held[i], Release); err != nil {
			log.Warn("failed to release held key on cancel", map[string]any{
				"key":   held[i].String(),
				"error": err.Error(),
			})
		}
	}
}
