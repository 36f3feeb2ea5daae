// Package state tracks which keys and mouse buttons are currently held.
//
// The tracker is the single source of truth for held state. The event
// processor is its only writer; concurrently running actions may read it
// at any time.
package state

import (
	"sync"

	"github.com/dshills/macrokey/internal/input"
	"github.com/dshills/macrokey/internal/input/key"
	"github.com/dshills/macrokey/internal/input/mouse"
)

// Tracker maintains the set of currently-held keys and mouse buttons.
// All transitions are total: pressing an already-held key is idempotent
// and releasing a key that is not held is a no-op.
type Tracker struct {
	mu      sync.RWMutex
	keys    map[key.Key]struct{}
	buttons map[mouse.Button]struct{}
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		keys:    make(map[key.Key]struct{}),
		buttons: make(map[mouse.Button]struct{}),
	}
}

// Update applies an event to the held sets. Move events are ignored.
func (t *Tracker) Update(ev input.Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch ev.Type {
	case input.EventKeyPress:
		t.keys[ev.Key] = struct{}{}
	case input.EventKeyRelease:
		delete(t.keys, ev.Key)
	case input.EventMousePress:
		t.buttons[ev.Button] = struct{}{}
	case input.EventMouseRelease:
		delete(t.buttons, ev.Button)
	}
}

// IsKeyHeld returns true if the key is currently held.
func (t *Tracker) IsKeyHeld(k key.Key) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.keys[k]
	return ok
}

// IsButtonHeld returns true if the button is currently held.
func (t *Tracker) IsButtonHeld(b mouse.Button) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.buttons[b]
	return ok
}

// IsTriggerHeld returns true if the key or button behind a trigger is held.
func (t *Tracker) IsTriggerHeld(trig input.Trigger) bool {
	switch trig.Kind {
	case input.TriggerKey:
		return t.IsKeyHeld(trig.Key)
	case input.TriggerButton:
		return t.IsButtonHeld(trig.Button)
	default:
		return false
	}
}

// HeldKeys returns a snapshot of the currently-held keys.
func (t *Tracker) HeldKeys() []key.Key {
	t.mu.RLock()
	defer t.mu.RUnlock()
	keys := make([]key.Key, 0, len(t.keys))
	for k := range t.keys {
		keys = append(keys, k)
	}
	return keys
}

// HeldButtons returns a snapshot of the currently-held buttons.
func (t *Tracker) HeldButtons() []mouse.Button {
	t.mu.RLock()
	defer t.mu.RUnlock()
	buttons := make([]mouse.Button, 0, len(t.buttons))
	for b := range t.buttons {
		buttons = append(buttons, b)
	}
	return buttons
}

// ActiveModifiers returns the modifier set derived from the currently-held
// modifier keys.
func (t *Tracker) ActiveModifiers() key.Modifier {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var mods key.Modifier
	for k := range t.keys {
		mods = mods.With(key.ModifierFromKey(k))
	}
	return mods
}
