package state

import (
	"testing"

	"github.com/dshills/macrokey/internal/input"
	"github.com/dshills/macrokey/internal/input/key"
	"github.com/dshills/macrokey/internal/input/mouse"
)

func TestTrackerPressRelease(t *testing.T) {
	tr := NewTracker()

	if tr.IsKeyHeld(key.KeyA) {
		t.Error("new tracker reports key held")
	}

	tr.Update(input.KeyPress(key.KeyA))
	if !tr.IsKeyHeld(key.KeyA) {
		t.Error("key not held after press")
	}

	tr.Update(input.KeyRelease(key.KeyA))
	if tr.IsKeyHeld(key.KeyA) {
		t.Error("key still held after release")
	}
}

func TestTrackerIdempotentPress(t *testing.T) {
	tr := NewTracker()

	// OS auto-repeat delivers repeated presses without a release.
	tr.Update(input.KeyPress(key.KeyA))
	tr.Update(input.KeyPress(key.KeyA))
	tr.Update(input.KeyPress(key.KeyA))

	if got := len(tr.HeldKeys()); got != 1 {
		t.Errorf("HeldKeys() has %d entries after repeated press, want 1", got)
	}

	tr.Update(input.KeyRelease(key.KeyA))
	if tr.IsKeyHeld(key.KeyA) {
		t.Error("key held after single release following repeated presses")
	}
}

func TestTrackerReleaseWhenAbsent(t *testing.T) {
	tr := NewTracker()

	// Releasing a key that was never pressed is a no-op, not an error.
	tr.Update(input.KeyRelease(key.KeyX))
	tr.Update(input.MouseRelease(mouse.ButtonLeft))

	if len(tr.HeldKeys()) != 0 || len(tr.HeldButtons()) != 0 {
		t.Error("tracker not empty after releasing absent inputs")
	}
}

func TestTrackerButtons(t *testing.T) {
	tr := NewTracker()

	tr.Update(input.MousePress(mouse.ButtonBack))
	if !tr.IsButtonHeld(mouse.ButtonBack) {
		t.Error("button not held after press")
	}
	if !tr.IsTriggerHeld(input.ButtonTrigger(mouse.ButtonBack)) {
		t.Error("IsTriggerHeld false for held button")
	}

	tr.Update(input.MouseRelease(mouse.ButtonBack))
	if tr.IsButtonHeld(mouse.ButtonBack) {
		t.Error("button still held after release")
	}
}

func TestTrackerIgnoresMoves(t *testing.T) {
	tr := NewTracker()

	tr.Update(input.MouseMove(100, 200))
	if len(tr.HeldKeys()) != 0 || len(tr.HeldButtons()) != 0 {
		t.Error("move event changed held state")
	}
}

func TestTrackerActiveModifiers(t *testing.T) {
	tr := NewTracker()

	tr.Update(input.KeyPress(key.KeyCtrl))
	tr.Update(input.KeyPress(key.KeyShift))
	tr.Update(input.KeyPress(key.KeyA)) // non-modifier, must not contribute

	want := key.ModCtrl | key.ModShift
	if got := tr.ActiveModifiers(); got != want {
		t.Errorf("ActiveModifiers() = %v, want %v", got, want)
	}

	tr.Update(input.KeyRelease(key.KeyCtrl))
	if got := tr.ActiveModifiers(); got != key.ModShift {
		t.Errorf("ActiveModifiers() after ctrl release = %v, want %v", got, key.ModShift)
	}
}

// Press/release algebra: held iff presses since last release >= 1.
func TestTrackerPressReleaseAlgebra(t *testing.T) {
	tests := []struct {
		name   string
		events []input.Event
		held   bool
	}{
		{"no events", nil, false},
		{"single press", []input.Event{input.KeyPress(key.KeyK)}, true},
		{
			"press release",
			[]input.Event{input.KeyPress(key.KeyK), input.KeyRelease(key.KeyK)},
			false,
		},
		{
			"press press release",
			[]input.Event{input.KeyPress(key.KeyK), input.KeyPress(key.KeyK), input.KeyRelease(key.KeyK)},
			false,
		},
		{
			"release press",
			[]input.Event{input.KeyRelease(key.KeyK), input.KeyPress(key.KeyK)},
			true,
		},
		{
			"press release press",
			[]input.Event{input.KeyPress(key.KeyK), input.KeyRelease(key.KeyK), input.KeyPress(key.KeyK)},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTracker()
			for _, ev := range tt.events {
				tr.Update(ev)
			}
			if got := tr.IsKeyHeld(key.KeyK); got != tt.held {
				t.Errorf("IsKeyHeld() = %v, want %v", got, tt.held)
			}
		})
	}
}
