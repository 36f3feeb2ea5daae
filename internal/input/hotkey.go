package input

import (
	"fmt"
	"strings"

	"github.com/dshills/macrokey/internal/input/key"
	"github.com/dshills/macrokey/internal/input/mouse"
)

// Hotkey is a modifier set plus a trigger, the match key into the binding
// registry. Hotkeys are comparable and usable as map keys; because the
// modifier set is a bit set, equality does not depend on the order the
// modifiers were declared in.
type Hotkey struct {
	Mods    key.Modifier
	Trigger Trigger
}

// ForKey returns a hotkey with no modifiers for a keyboard key.
func ForKey(k key.Key) Hotkey {
	return Hotkey{Trigger: KeyTrigger(k)}
}

// ForButton returns a hotkey with no modifiers for a mouse button.
func ForButton(b mouse.Button) Hotkey {
	return Hotkey{Trigger: ButtonTrigger(b)}
}

// Combo returns a hotkey with the given modifier set and trigger.
func Combo(mods key.Modifier, trigger Trigger) Hotkey {
	return Hotkey{Mods: mods, Trigger: trigger}
}

// String returns the canonical form, e.g. "ctrl+shift+p" or "mouse:back".
func (h Hotkey) String() string {
	if h.Mods.IsEmpty() {
		return h.Trigger.String()
	}
	return h.Mods.String() + "+" + h.Trigger.String()
}

// Specificity is the size of the hotkey's modifier set, used to break ties
// among overlapping bindings.
func (h Hotkey) Specificity() int {
	return h.Mods.Count()
}

// ParseHotkey parses a hotkey specification like "ctrl+shift+p", "f1" or
// "mouse4". The last "+"-separated token is the trigger; everything before
// it must be a modifier name.
func ParseHotkey(spec string) (Hotkey, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(spec)), "+")
	if len(parts) == 0 || parts[len(parts)-1] == "" {
		return Hotkey{}, fmt.Errorf("%w: %q", ErrEmptySpec, spec)
	}

	var mods key.Modifier
	for _, part := range parts[:len(parts)-1] {
		m := key.ModifierFromName(part)
		if m == key.ModNone {
			return Hotkey{}, fmt.Errorf("hotkey %q: %w: %q", spec, ErrUnknownModifier, part)
		}
		mods = mods.With(m)
	}

	name := strings.TrimSpace(parts[len(parts)-1])
	if b := mouse.FromName(name); b != mouse.ButtonNone {
		return Hotkey{Mods: mods, Trigger: ButtonTrigger(b)}, nil
	}
	if k := key.FromName(name); k != key.KeyNone {
		return Hotkey{Mods: mods, Trigger: KeyTrigger(k)}, nil
	}
	return Hotkey{}, fmt.Errorf("hotkey %q: %w: %q", spec, ErrUnknownTrigger, name)
}
