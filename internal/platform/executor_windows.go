//go:build windows

package platform

import (
	"fmt"
	"syscall"
	"unsafe"

	"github.com/dshills/macrokey/internal/action"
	"github.com/dshills/macrokey/internal/input/key"
	"github.com/dshills/macrokey/internal/input/mouse"
)

const (
	inputMouse    = 0
	inputKeyboard = 1

	keyeventfKeyup = 0x0002

	mouseeventfMove       = 0x0001
	mouseeventfLeftDown   = 0x0002
	mouseeventfLeftUp     = 0x0004
	mouseeventfRightDown  = 0x0008
	mouseeventfRightUp    = 0x0010
	mouseeventfMiddleDown = 0x0020
	mouseeventfMiddleUp   = 0x0040
	mouseeventfXDown      = 0x0080
	mouseeventfXUp        = 0x0100
	mouseeventfAbsolute   = 0x8000

	xbutton1 = 1
	xbutton2 = 2
)

// virtualKeys maps keys to Windows virtual key codes.
var virtualKeys = map[key.Key]uint16{
	key.KeyA: 0x41, key.KeyB: 0x42, key.KeyC: 0x43, key.KeyD: 0x44,
	key.KeyE: 0x45, key.KeyF: 0x46, key.KeyG: 0x47, key.KeyH: 0x48,
	key.KeyI: 0x49, key.KeyJ: 0x4A, key.KeyK: 0x4B, key.KeyL: 0x4C,
	key.KeyM: 0x4D, key.KeyN: 0x4E, key.KeyO: 0x4F, key.KeyP: 0x50,
	key.KeyQ: 0x51, key.KeyR: 0x52, key.KeyS: 0x53, key.KeyT: 0x54,
	key.KeyU: 0x55, key.KeyV: 0x56, key.KeyW: 0x57, key.KeyX: 0x58,
	key.KeyY: 0x59, key.KeyZ: 0x5A,

	key.Key0: 0x30, key.Key1: 0x31, key.Key2: 0x32, key.Key3: 0x33,
	key.Key4: 0x34, key.Key5: 0x35, key.Key6: 0x36, key.Key7: 0x37,
	key.Key8: 0x38, key.Key9: 0x39,

	key.KeyShift: 0x10, key.KeyCtrl: 0x11, key.KeyAlt: 0x12,
	key.KeyMeta: 0x5B, // VK_LWIN

	key.KeyF1: 0x70, key.KeyF2: 0x71, key.KeyF3: 0x72, key.KeyF4: 0x73,
	key.KeyF5: 0x74, key.KeyF6: 0x75, key.KeyF7: 0x76, key.KeyF8: 0x77,
	key.KeyF9: 0x78, key.KeyF10: 0x79, key.KeyF11: 0x7A, key.KeyF12: 0x7B,

	key.KeyEnter: 0x0D, key.KeyEscape: 0x1B, key.KeySpace: 0x20,
	key.KeyTab: 0x09, key.KeyBackspace: 0x08, key.KeyDelete: 0x2E,
	key.KeyHome: 0x24, key.KeyEnd: 0x23,
	key.KeyPageUp: 0x21, key.KeyPageDown: 0x22,
	key.KeyLeft: 0x25, key.KeyUp: 0x26, key.KeyRight: 0x27, key.KeyDown: 0x28,

	key.KeyMinus: 0xBD, key.KeyEqual: 0xBB,
	key.KeyLeftBracket: 0xDB, key.KeyRightBracket: 0xDD,
	key.KeyBackslash: 0xDC, key.KeySemicolon: 0xBA,
	key.KeyApostrophe: 0xDE, key.KeyGrave: 0xC0,
	key.KeyComma: 0xBC, key.KeyPeriod: 0xBE, key.KeySlash: 0xBF,
}

// keyboardInput is the INPUT structure with a KEYBDINPUT payload,
// padded out to sizeof(INPUT) on 64-bit Windows.
type keyboardInput struct {
	Type uint32
	Ki   struct {
		WVk         uint16
		WScan       uint16
		DwFlags     uint32
		Time        uint32
		DwExtraInfo uintptr
		Padding1    uint32
		Padding2    uint32
		Padding3    uint32
	}
}

// mouseInput is the INPUT structure with a MOUSEINPUT payload.
type mouseInput struct {
	Type uint32
	Mi   struct {
		Dx          int32
		Dy          int32
		MouseData   uint32
		DwFlags     uint32
		Time        uint32
		DwExtraInfo uintptr
	}
}

// sendInputExecutor injects events through the SendInput API.
type sendInputExecutor struct {
	log       action.Logger
	sendInput *syscall.LazyProc
	metrics   *syscall.LazyProc
}

// NewSendInputExecutor creates the Windows injection backend.
func NewSendInputExecutor(log action.Logger) (action.Executor, error) {
	user32 := syscall.NewLazyDLL("user32.dll")
	return &sendInputExecutor{
		log:       log,
		sendInput: user32.NewProc("SendInput"),
		metrics:   user32.NewProc("GetSystemMetrics"),
	}, nil
}

func (e *sendInputExecutor) SimulateKey(k key.Key, state action.State) error {
	vk, ok := virtualKeys[k]
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnmappedKey, k)
	}

	var in keyboardInput
	in.Type = inputKeyboard
	in.Ki.WVk = vk
	if state == action.Release {
		in.Ki.DwFlags = keyeventfKeyup
	}

	ret, _, err := e.sendInput.Call(
		1,
		uintptr(unsafe.Pointer(&in)),
		unsafe.Sizeof(in),
	)
	if ret != 1 {
		return fmt.Errorf("SendInput key %v: %v", k, err)
	}
	return nil
}

func (e *sendInputExecutor) SimulateMouse(b mouse.Button, state action.State) error {
	var flags, data uint32
	press := state == action.Press

	switch b {
	case mouse.ButtonLeft:
		flags = mouseeventfLeftDown
		if !press {
			flags = mouseeventfLeftUp
		}
	case mouse.ButtonRight:
		flags = mouseeventfRightDown
		if !press {
			flags = mouseeventfRightUp
		}
	case mouse.ButtonMiddle:
		flags = mouseeventfMiddleDown
		if !press {
			flags = mouseeventfMiddleUp
		}
	case mouse.ButtonBack, mouse.ButtonForward:
		flags = mouseeventfXDown
		if !press {
			flags = mouseeventfXUp
		}
		data = xbutton1
		if b == mouse.ButtonForward {
			data = xbutton2
		}
	default:
		return fmt.Errorf("%w: %v", ErrUnmappedButton, b)
	}

	return e.sendMouse(0, 0, data, flags)
}

func (e *sendInputExecutor) MouseMoveRel(dx, dy int) error {
	return e.sendMouse(int32(dx), int32(dy), 0, mouseeventfMove)
}

// MouseMoveAbs normalizes screen coordinates into the 0..65535 range
// SendInput expects for absolute moves.
func (e *sendInputExecutor) MouseMoveAbs(x, y int) error {
	const smCxScreen, smCyScreen = 0, 1
	w, _, _ := e.metrics.Call(smCxScreen)
	h, _, _ := e.metrics.Call(smCyScreen)
	if w == 0 || h == 0 {
		return fmt.Errorf("querying screen size for absolute move")
	}
	nx := int32(int64(x) * 65535 / int64(w))
	ny := int32(int64(y) * 65535 / int64(h))
	return e.sendMouse(nx, ny, 0, mouseeventfMove|mouseeventfAbsolute)
}

func (e *sendInputExecutor) sendMouse(dx, dy int32, data, flags uint32) error {
	var in mouseInput
	in.Type = inputMouse
	in.Mi.Dx = dx
	in.Mi.Dy = dy
	in.Mi.MouseData = data
	in.Mi.DwFlags = flags

	ret, _, err := e.sendInput.Call(
		1,
		uintptr(unsafe.Pointer(&in)),
		unsafe.Sizeof(in),
	)
	if ret != 1 {
		return fmt.Errorf("SendInput mouse: %v", err)
	}
	return nil
}
