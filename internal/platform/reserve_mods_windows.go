//go:build windows

package platform

import (
	"golang.design/x/hotkey"

	"github.com/dshills/macrokey/internal/input/key"
)

func reserveModifiers(mods key.Modifier) []hotkey.Modifier {
	var out []hotkey.Modifier
	if mods.Has(key.ModCtrl) {
		out = append(out, hotkey.ModCtrl)
	}
	if mods.Has(key.ModShift) {
		out = append(out, hotkey.ModShift)
	}
	if mods.Has(key.ModAlt) {
		out = append(out, hotkey.ModAlt)
	}
	if mods.Has(key.ModMeta) {
		out = append(out, hotkey.ModWin)
	}
	return out
}
