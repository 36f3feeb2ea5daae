package action

import (
	"fmt"

	"github.com/rivo/uniseg"

	"github.com/dshills/macrokey/internal/input/key"
)

// keystroke is one entry in the character table: the key to press and
// whether it needs Shift held.
type keystroke struct {
	key   key.Key
	shift bool
}

// charTable maps printable ASCII characters (plus newline and tab) to
// keystrokes on a US layout.
var charTable = map[rune]keystroke{
	' ':  {key.KeySpace, false},
	'\n': {key.KeyEnter, false},
	'\t': {key.KeyTab, false},

	'0': {key.Key0, false}, '1': {key.Key1, false}, '2': {key.Key2, false},
	'3': {key.Key3, false}, '4': {key.Key4, false}, '5': {key.Key5, false},
	'6': {key.Key6, false}, '7': {key.Key7, false}, '8': {key.Key8, false},
	'9': {key.Key9, false},

	')': {key.Key0, true}, '!': {key.Key1, true}, '@': {key.Key2, true},
	'#': {key.Key3, true}, '$': {key.Key4, true}, '%': {key.Key5, true},
	'^': {key.Key6, true}, '&': {key.Key7, true}, '*': {key.Key8, true},
	'(': {key.Key9, true},

	'-':  {key.KeyMinus, false},
	'_':  {key.KeyMinus, true},
	'=':  {key.KeyEqual, false},
	'+':  {key.KeyEqual, true},
	'[':  {key.KeyLeftBracket, false},
	'{':  {key.KeyLeftBracket, true},
	']':  {key.KeyRightBracket, false},
	'}':  {key.KeyRightBracket, true},
	'\\': {key.KeyBackslash, false},
	'|':  {key.KeyBackslash, true},
	';':  {key.KeySemicolon, false},
	':':  {key.KeySemicolon, true},
	'\'': {key.KeyApostrophe, false},
	'"':  {key.KeyApostrophe, true},
	'`':  {key.KeyGrave, false},
	'~':  {key.KeyGrave, true},
	',':  {key.KeyComma, false},
	'<':  {key.KeyComma, true},
	'.':  {key.KeyPeriod, false},
	'>':  {key.KeyPeriod, true},
	'/':  {key.KeySlash, false},
	'?':  {key.KeySlash, true},
}

func init() {
	for r := 'a'; r <= 'z'; r++ {
		k := key.KeyA + key.Key(r-'a')
		charTable[r] = keystroke{k, false}
		charTable[r-'a'+'A'] = keystroke{k, true}
	}
}

// lookupChar returns the keystroke for a single character, if mapped.
func lookupChar(r rune) (keystroke, bool) {
	ks, ok := charTable[r]
	return ks, ok
}

// typeText emits the keystrokes for a string. Each shifted character is
// bracketed by its own shift press and release. Unmapped characters are
// skipped with a warning; the rest of the string continues. Text is walked
// by grapheme cluster so a multi-rune cluster is skipped as one unit.
func (in *Interpreter) typeText(exec Executor, text string) error {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		runes := gr.Runes()
		if len(runes) != 1 {
			in.log.Warn("skipping unmapped character", map[string]any{"char": gr.Str()})
			continue
		}
		ks, ok := lookupChar(runes[0])
		if !ok {
			in.log.Warn("skipping unmapped character", map[string]any{"char": string(runes[0])})
			continue
		}
		if err := in.typeOne(exec, ks); err != nil {
			return fmt.Errorf("typing %q: %w", runes[0], err)
		}
	}
	return nil
}

func (in *Interpreter) typeOne(exec Executor, ks keystroke) error {
	if ks.shift {
		if err := exec.SimulateKey(key.KeyShift, Press); err != nil {
			return fmt.Errorf("%w: %v", ErrExecutorFailure, err)
		}
	}
	err := exec.SimulateKey(ks.key, Press)
	if err == nil {
		err = exec.SimulateKey(ks.key, Release)
	}
	if ks.shift {
		// Always unwind shift, even if the key itself failed.
		if relErr := exec.SimulateKey(key.KeyShift, Release); relErr != nil && err == nil {
			err = relErr
		}
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrExecutorFailure, err)
	}
	return nil
}
