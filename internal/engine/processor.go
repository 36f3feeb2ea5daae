package engine

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dshills/macrokey/internal/action"
	"github.com/dshills/macrokey/internal/binding"
	"github.com/dshills/macrokey/internal/input"
	"github.com/dshills/macrokey/internal/input/key"
	"github.com/dshills/macrokey/internal/input/state"
)

// activeRepeat pairs a triggering hotkey's in-flight repeat loop with its
// cancellation handle. Owned exclusively by the Processor.
type activeRepeat struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Processor consumes the ordered input event stream, updates held state,
// resolves bindings, and submits triggered actions to the interpreter.
//
// It is the sole writer of the state tracker and the sole owner of the
// active repeat set. Events must be handled strictly in arrival order;
// triggered actions run on their own goroutines and never block intake.
type Processor struct {
	tracker  *state.Tracker
	registry *binding.Registry
	interp   *action.Interpreter
	log      action.Logger
	metrics  *Metrics

	mu      sync.Mutex
	repeats map[input.Hotkey]*activeRepeat
	closed  bool

	wg sync.WaitGroup
}

// NewProcessor creates a processor over a registry and interpreter.
func NewProcessor(reg *binding.Registry, interp *action.Interpreter, log action.Logger) *Processor {
	if log == nil {
		log = action.NopLogger{}
	}
	return &Processor{
		tracker:  state.NewTracker(),
		registry: reg,
		interp:   interp,
		log:      log,
		metrics:  NewMetrics(),
		repeats:  make(map[input.Hotkey]*activeRepeat),
	}
}

// Metrics returns the processor's counters.
func (p *Processor) Metrics() *Metrics {
	return p.metrics
}

// Run consumes events until the stream closes or ctx is cancelled, then
// shuts down. Stream termination means the process is shutting down.
func (p *Processor) Run(ctx context.Context, events <-chan input.Event) error {
	defer p.Shutdown()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return ErrStreamClosed
			}
			p.HandleEvent(ev)
		}
	}
}

// HandleEvent processes a single event and reports whether the originating
// physical event should be swallowed by the capture layer.
//
// The active modifier set is captured before the event is applied to the
// tracker, so a modifier key's own press never qualifies itself; a trigger
// that is itself a modifier still chords with other already-held modifiers.
func (p *Processor) HandleEvent(ev input.Event) bool {
	p.metrics.Events.Add(1)

	active := p.tracker.ActiveModifiers()
	p.tracker.Update(ev)

	switch {
	case ev.IsPress():
		return p.handlePress(ev, active)
	case ev.IsRelease():
		p.handleRelease(ev)
		return false
	default:
		// Move events never trigger bindings.
		return false
	}
}

func (p *Processor) handlePress(ev input.Event, active key.Modifier) bool {
	// OS auto-repeat of a held modifier key would otherwise see its own
	// bit already set and match itself as a chord.
	if ev.Type == input.EventKeyPress {
		active = active.Without(key.ModifierFromKey(ev.Key))
	}

	match, ok := p.registry.Resolve(ev.Trigger(), active)
	if !ok {
		return false
	}

	if match.Action.Kind == action.KindRepeatWhileHeld {
		p.startRepeat(match)
	} else {
		p.startAction(match)
	}
	return match.Swallow
}

func (p *Processor) handleRelease(ev input.Event) {
	trig := ev.Trigger()

	p.mu.Lock()
	defer p.mu.Unlock()
	for hk, ar := range p.repeats {
		if hk.Trigger == trig {
			ar.cancel()
			delete(p.repeats, hk)
			p.metrics.RepeatsCancelled.Add(1)
		}
	}
}

// startAction runs a non-repeat action on its own goroutine. The same
// hotkey firing again mid-flight starts a second independent execution.
func (p *Processor) startAction(match binding.Match) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.wg.Add(1)
	p.mu.Unlock()

	id := uuid.NewString()
	p.metrics.ActionsStarted.Add(1)
	p.log.Debug("action triggered", map[string]any{
		"exec_id": id,
		"hotkey":  match.Hotkey.String(),
		"action":  match.Action.String(),
	})

	go func() {
		defer p.wg.Done()
		if err := p.interp.Run(context.Background(), match.Action); err != nil {
			p.metrics.ActionFailures.Add(1)
			p.log.Error("action failed", map[string]any{
				"exec_id": id,
				"hotkey":  match.Hotkey.String(),
				"error":   err.Error(),
			})
		}
	}()
}

// startRepeat spawns the repeat loop for a hotkey unless one is already
// running (OS key auto-repeat must never double-spawn).
func (p *Processor) startRepeat(match binding.Match) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if _, exists := p.repeats[match.Hotkey]; exists {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	ar := &activeRepeat{cancel: cancel, done: make(chan struct{})}
	p.repeats[match.Hotkey] = ar
	p.wg.Add(1)
	p.metrics.RepeatsStarted.Add(1)

	id := uuid.NewString()
	p.log.Debug("repeat started", map[string]any{
		"exec_id": id,
		"hotkey":  match.Hotkey.String(),
	})

	go func() {
		defer p.wg.Done()
		defer close(ar.done)
		if err := p.interp.RunRepeat(ctx, match.Action); err != nil {
			p.metrics.ActionFailures.Add(1)
			p.log.Error("repeat failed", map[string]any{
				"exec_id": id,
				"hotkey":  match.Hotkey.String(),
				"error":   err.Error(),
			})
		}
		// A repeat that ends on its own (body failure) must not leave a
		// stale entry blocking the next press.
		p.mu.Lock()
		if cur, ok := p.repeats[match.Hotkey]; ok && cur == ar {
			delete(p.repeats, match.Hotkey)
		}
		p.mu.Unlock()
	}()
}

// ActiveRepeats returns the number of in-flight repeat loops.
func (p *Processor) ActiveRepeats() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.repeats)
}

// Shutdown cancels all active repeats and waits for in-flight actions.
// Safe to call more than once.
func (p *Processor) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		p.wg.Wait()
		return
	}
	p.closed = true
	for hk, ar := range p.repeats {
		ar.cancel()
		delete(p.repeats, hk)
		p.metrics.RepeatsCancelled.Add(1)
	}
	p.mu.Unlock()

	p.wg.Wait()
}
