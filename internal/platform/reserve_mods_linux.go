//go:build linux

package platform

import (
	"golang.design/x/hotkey"

	"github.com/dshills/macrokey/internal/input/key"
)

// reserveModifiers maps the modifier set to X11 modifier masks. Alt is
// Mod1 and Super is Mod4 under the default modmap.
func reserveModifiers(mods key.Modifier) []hotkey.Modifier {
	var out []hotkey.Modifier
	if mods.Has(key.ModCtrl) {
		out = append(out, hotkey.ModCtrl)
	}
	if mods.Has(key.ModShift) {
		out = append(out, hotkey.ModShift)
	}
	if mods.Has(key.ModAlt) {
		out = append(out, hotkey.Mod1)
	}
	if mods.Has(key.ModMeta) {
		out = append(out, hotkey.Mod4)
	}
	return out
}
