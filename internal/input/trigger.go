package input

import (
	"github.com/dshills/macrokey/internal/input/key"
	"github.com/dshills/macrokey/internal/input/mouse"
)

// TriggerKind discriminates the two trigger variants.
type TriggerKind uint8

const (
	// TriggerNone indicates an empty trigger.
	TriggerNone TriggerKind = iota
	// TriggerKey indicates a keyboard key trigger.
	TriggerKey
	// TriggerButton indicates a mouse button trigger.
	TriggerButton
)

// Trigger is the key or mouse button whose transition a hotkey cares about.
// The zero value is the empty trigger. Triggers are comparable and usable
// as map keys.
type Trigger struct {
	Kind   TriggerKind
	Key    key.Key
	Button mouse.Button
}

// KeyTrigger returns a trigger for a keyboard key.
func KeyTrigger(k key.Key) Trigger {
	return Trigger{Kind: TriggerKey, Key: k}
}

// ButtonTrigger returns a trigger for a mouse button.
func ButtonTrigger(b mouse.Button) Trigger {
	return Trigger{Kind: TriggerButton, Button: b}
}

// IsZero returns true for the empty trigger.
func (t Trigger) IsZero() bool {
	return t.Kind == TriggerNone
}

// String returns the trigger's canonical name.
func (t Trigger) String() string {
	switch t.Kind {
	case TriggerKey:
		return t.Key.String()
	case TriggerButton:
		return "mouse:" + t.Button.String()
	default:
		return "none"
	}
}
