package key

import (
	"math/bits"
	"strings"
)

// Modifier represents a set of keyboard modifier keys as a bit set.
// Set equality is order-independent by construction.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << iota

	// ModCtrl indicates the Control key.
	ModCtrl

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt

	// ModMeta indicates the Meta key (Cmd on macOS, Win on Windows).
	ModMeta
)

// Has returns true if m contains all modifiers in mod.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod == mod
}

// HasShift returns true if Shift is set.
func (m Modifier) HasShift() bool {
	return m.Has(ModShift)
}

// HasCtrl returns true if Control is set.
func (m Modifier) HasCtrl() bool {
	return m.Has(ModCtrl)
}

// HasAlt returns true if Alt is set.
func (m Modifier) HasAlt() bool {
	return m.Has(ModAlt)
}

// HasMeta returns true if Meta is set.
func (m Modifier) HasMeta() bool {
	return m.Has(ModMeta)
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// SubsetOf returns true if every modifier in m is also in other.
func (m Modifier) SubsetOf(other Modifier) bool {
	return m&^other == 0
}

// Count returns the number of modifiers in the set.
func (m Modifier) Count() int {
	return bits.OnesCount8(uint8(m))
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// String returns a canonical representation like "ctrl+shift".
// The order is fixed regardless of how the set was built.
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	if m.HasCtrl() {
		parts = append(parts, "ctrl")
	}
	if m.HasAlt() {
		parts = append(parts, "alt")
	}
	if m.HasShift() {
		parts = append(parts, "shift")
	}
	if m.HasMeta() {
		parts = append(parts, "meta")
	}
	return strings.Join(parts, "+")
}

// modifierNameMap maps modifier names (lowercase) to Modifier values.
var modifierNameMap = map[string]Modifier{
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"alt":     ModAlt,
	"option":  ModAlt,
	"opt":     ModAlt,
	"shift":   ModShift,
	"meta":    ModMeta,
	"cmd":     ModMeta,
	"command": ModMeta,
	"win":     ModMeta,
	"super":   ModMeta,
}

// ModifierFromName returns the Modifier for a given name (case-insensitive).
// Returns ModNone if the name is not recognized.
func ModifierFromName(name string) Modifier {
	if m, ok := modifierNameMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return m
	}
	return ModNone
}

// ModifierFromKey returns the modifier bit for a modifier key,
// or ModNone if the key is not a modifier key.
func ModifierFromKey(k Key) Modifier {
	switch k {
	case KeyCtrl:
		return ModCtrl
	case KeyShift:
		return ModShift
	case KeyAlt:
		return ModAlt
	case KeyMeta:
		return ModMeta
	default:
		return ModNone
	}
}

// KeyFromModifier returns the key that carries a single modifier bit,
// or KeyNone if mod is not exactly one modifier.
func KeyFromModifier(mod Modifier) Key {
	switch mod {
	case ModCtrl:
		return KeyCtrl
	case ModShift:
		return KeyShift
	case ModAlt:
		return KeyAlt
	case ModMeta:
		return KeyMeta
	default:
		return KeyNone
	}
}
