package binding

import (
	"fmt"
	"sync"

	"github.com/dshills/macrokey/internal/action"
	"github.com/dshills/macrokey/internal/input"
	"github.com/dshills/macrokey/internal/input/key"
)

// Options carries per-binding configuration.
type Options struct {
	// Swallow requests that the originating physical event not be passed
	// through to other applications, where the capture backend supports
	// suppression. Default is pass-through.
	Swallow bool
}

// Match is the result of resolving a trigger against the registry.
type Match struct {
	Hotkey  input.Hotkey
	Action  *action.Action
	Swallow bool
}

// Warning describes an ambiguous pair of bindings detected at bind time:
// two bindings on the same trigger whose modifier sets are distinct but
// equally specific, so both can match the same chord. Resolution is
// deterministic (most recently bound wins) but the configuration should be
// fixed.
type Warning struct {
	First  input.Hotkey
	Second input.Hotkey
}

// String returns a human-readable description of the warning.
func (w Warning) String() string {
	return fmt.Sprintf("ambiguous bindings %q and %q: equally specific for trigger %q; most recently bound wins",
		w.First, w.Second, w.Second.Trigger)
}

type entry struct {
	hotkey  input.Hotkey
	act     *action.Action
	swallow bool
	seq     uint64 // bind order, larger is more recent
}

// Registry maps hotkeys to action trees.
//
// Binding the same hotkey twice replaces the previous action. Resolution
// picks the most specific binding whose modifier set is a subset of the
// active modifiers; equal specificity is broken by most-recent-bind.
//
// The registry is built once at configuration time and read from the event
// loop and from running actions; it stays internally mutable (Rebuild) so
// a config reload can swap the whole table atomically.
type Registry struct {
	mu       sync.RWMutex
	byTrig   map[input.Trigger][]entry
	warnings []Warning
	nextSeq  uint64
	count    int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byTrig: make(map[input.Trigger][]entry),
	}
}

// Bind inserts or replaces the action for a hotkey.
func (r *Registry) Bind(hk input.Hotkey, act *action.Action, opts Options) error {
	if hk.Trigger.IsZero() {
		return ErrEmptyTrigger
	}
	if err := act.Validate(); err != nil {
		return fmt.Errorf("binding %q: %w", hk, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.bindLocked(hk, act, opts)
	return nil
}

func (r *Registry) bindLocked(hk input.Hotkey, act *action.Action, opts Options) {
	r.nextSeq++
	e := entry{hotkey: hk, act: act, swallow: opts.Swallow, seq: r.nextSeq}

	entries := r.byTrig[hk.Trigger]
	for i, old := range entries {
		if old.hotkey.Mods == hk.Mods {
			entries[i] = e // last write wins
			return
		}
	}

	// Distinct modifier sets of equal size on the same trigger can both
	// match a larger chord; flag at bind time.
	for _, old := range entries {
		if old.hotkey.Mods.Count() == hk.Mods.Count() {
			r.warnings = append(r.warnings, Warning{First: old.hotkey, Second: hk})
		}
	}

	r.byTrig[hk.Trigger] = append(entries, e)
	r.count++
}

// Resolve returns the action bound to the most specific hotkey matching the
// trigger under the active modifiers, or false if none matches.
func (r *Registry) Resolve(trig input.Trigger, active key.Modifier) (Match, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var best *entry
	for i := range r.byTrig[trig] {
		e := &r.byTrig[trig][i]
		if !e.hotkey.Mods.SubsetOf(active) {
			continue
		}
		if best == nil ||
			e.hotkey.Mods.Count() > best.hotkey.Mods.Count() ||
			(e.hotkey.Mods.Count() == best.hotkey.Mods.Count() && e.seq > best.seq) {
			best = e
		}
	}
	if best == nil {
		return Match{}, false
	}
	return Match{Hotkey: best.hotkey, Action: best.act, Swallow: best.swallow}, true
}

// Action returns the action bound to an exact hotkey, if any.
func (r *Registry) Action(hk input.Hotkey) (*action.Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.byTrig[hk.Trigger] {
		if e.hotkey.Mods == hk.Mods {
			return e.act, true
		}
	}
	return nil, false
}

// Hotkeys returns all bound hotkeys, for OS-level registration at startup.
func (r *Registry) Hotkeys() []input.Hotkey {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]input.Hotkey, 0, r.count)
	for _, entries := range r.byTrig {
		for _, e := range entries {
			out = append(out, e.hotkey)
		}
	}
	return out
}

// Warnings returns the ambiguity warnings collected at bind time.
func (r *Registry) Warnings() []Warning {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Warning, len(r.warnings))
	copy(out, r.warnings)
	return out
}

// Len returns the number of bound hotkeys.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.count
}

// Rebuild atomically replaces the whole binding table. Used by config
// reload; the old table serves lookups until the swap.
func (r *Registry) Rebuild(bind func(add func(input.Hotkey, *action.Action, Options))) {
	next := NewRegistry()
	bind(func(hk input.Hotkey, act *action.Action, opts Options) {
		next.bindLocked(hk, act, opts)
	})

	r.mu.Lock()
	defer r.mu.Unlock()
	r.byTrig = next.byTrig
	r.warnings = next.warnings
	r.nextSeq = next.nextSeq
	r.count = next.count
}
