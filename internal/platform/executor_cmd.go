//go:build !windows

package platform

import (
	"fmt"
	"os/exec"
	"strconv"

	"github.com/dshills/macrokey/internal/action"
	"github.com/dshills/macrokey/internal/input/key"
	"github.com/dshills/macrokey/internal/input/mouse"
)

// xdotoolNames maps keys to X11 keysym names understood by xdotool.
var xdotoolNames = map[key.Key]string{
	key.KeyCtrl: "ctrl", key.KeyShift: "shift", key.KeyAlt: "alt",
	key.KeyMeta: "super",

	key.KeyEnter: "Return", key.KeyEscape: "Escape", key.KeySpace: "space",
	key.KeyTab: "Tab", key.KeyBackspace: "BackSpace", key.KeyDelete: "Delete",
	key.KeyHome: "Home", key.KeyEnd: "End",
	key.KeyPageUp: "Page_Up", key.KeyPageDown: "Page_Down",
	key.KeyUp: "Up", key.KeyDown: "Down", key.KeyLeft: "Left", key.KeyRight: "Right",

	key.KeyMinus: "minus", key.KeyEqual: "equal",
	key.KeyLeftBracket: "bracketleft", key.KeyRightBracket: "bracketright",
	key.KeyBackslash: "backslash", key.KeySemicolon: "semicolon",
	key.KeyApostrophe: "apostrophe", key.KeyGrave: "grave",
	key.KeyComma: "comma", key.KeyPeriod: "period", key.KeySlash: "slash",
}

func xdotoolName(k key.Key) (string, bool) {
	if name, ok := xdotoolNames[k]; ok {
		return name, true
	}
	if k.IsLetter() || k.IsDigit() || k.IsFunctionKey() {
		// Single characters and F-keys use their plain names.
		name := k.String()
		if k.IsFunctionKey() {
			return "F" + name[1:], true
		}
		return name, true
	}
	return "", false
}

// xdotoolButtons maps buttons to X11 button numbers. Buttons 4 to 7
// are scroll events, so back and forward are 8 and 9.
var xdotoolButtons = map[mouse.Button]string{
	mouse.ButtonLeft:    "1",
	mouse.ButtonMiddle:  "2",
	mouse.ButtonRight:   "3",
	mouse.ButtonBack:    "8",
	mouse.ButtonForward: "9",
}

// xdotoolExecutor injects events by shelling out to xdotool. It is the
// X11 fallback when uinput is not accessible.
type xdotoolExecutor struct {
	log action.Logger
}

// NewXdotoolExecutor creates the xdotool injection backend.
func NewXdotoolExecutor(log action.Logger) (action.Executor, error) {
	if _, err := exec.LookPath("xdotool"); err != nil {
		return nil, fmt.Errorf("%w: xdotool not installed", ErrBackendUnavailable)
	}
	return &xdotoolExecutor{log: log}, nil
}

func (e *xdotoolExecutor) run(args ...string) error {
	out, err := exec.Command("xdotool", args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("xdotool %s: %v: %s", args[0], err, out)
	}
	return nil
}

func (e *xdotoolExecutor) SimulateKey(k key.Key, state action.State) error {
	name, ok := xdotoolName(k)
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnmappedKey, k)
	}
	verb := "keydown"
	if state == action.Release {
		verb = "keyup"
	}
	return e.run(verb, name)
}

func (e *xdotoolExecutor) SimulateMouse(b mouse.Button, state action.State) error {
	num, ok := xdotoolButtons[b]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnmappedButton, b)
	}
	verb := "mousedown"
	if state == action.Release {
		verb = "mouseup"
	}
	return e.run(verb, num)
}

func (e *xdotoolExecutor) MouseMoveAbs(x, y int) error {
	return e.run("mousemove", strconv.Itoa(x), strconv.Itoa(y))
}

func (e *xdotoolExecutor) MouseMoveRel(dx, dy int) error {
	return e.run("mousemove_relative", "--", strconv.Itoa(dx), strconv.Itoa(dy))
}

// osascriptExecutor injects key events on macOS through System Events.
// Mouse injection is not available without additional tooling.
type osascriptExecutor struct {
	log action.Logger
}

// NewOsascriptExecutor creates the macOS injection backend.
func NewOsascriptExecutor(log action.Logger) (action.Executor, error) {
	if _, err := exec.LookPath("osascript"); err != nil {
		return nil, fmt.Errorf("%w: osascript not found", ErrBackendUnavailable)
	}
	return &osascriptExecutor{log: log}, nil
}

func (e *osascriptExecutor) script(src string) error {
	out, err := exec.Command("osascript", "-e", src).CombinedOutput()
	if err != nil {
		return fmt.Errorf("osascript: %v: %s", err, out)
	}
	return nil
}

func osascriptTerm(k key.Key) (string, bool) {
	switch k {
	case key.KeyCtrl:
		return "control", true
	case key.KeyShift:
		return "shift", true
	case key.KeyAlt:
		return "option", true
	case key.KeyMeta:
		return "command", true
	}
	if k.IsLetter() || k.IsDigit() {
		return `"` + k.String() + `"`, true
	}
	switch k {
	case key.KeySpace:
		return `" "`, true
	case key.KeyTab:
		return `tab`, true
	case key.KeyEnter:
		return `return`, true
	}
	return "", false
}

func (e *osascriptExecutor) SimulateKey(k key.Key, state action.State) error {
	term, ok := osascriptTerm(k)
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnmappedKey, k)
	}
	verb := "key down"
	if state == action.Release {
		verb = "key up"
	}
	return e.script(fmt.Sprintf(`tell application "System Events" to %s %s`, verb, term))
}

func (e *osascriptExecutor) SimulateMouse(b mouse.Button, state action.State) error {
	return fmt.Errorf("%w: %v", ErrUnmappedButton, b)
}

func (e *osascriptExecutor) MouseMoveAbs(x, y int) error {
	return fmt.Errorf("%w: mouse movement needs uinput or xdotool", ErrBackendUnavailable)
}

func (e *osascriptExecutor) MouseMoveRel(dx, dy int) error {
	return fmt.Errorf("%w: mouse movement needs uinput or xdotool", ErrBackendUnavailable)
}
