//go:build linux

package platform

import (
	"encoding/binary"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sys/unix"

	"github.com/dshills/macrokey/internal/action"
	"github.com/dshills/macrokey/internal/input/key"
	"github.com/dshills/macrokey/internal/input/mouse"
)

// uinput ioctl requests, from linux/uinput.h.
const (
	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565
	uiSetRelBit  = 0x40045566
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502

	evRel = 0x02
	relX  = 0x00
	relY  = 0x01
)

// uinputExecutor injects events through a virtual /dev/uinput device.
// It works on any Linux system regardless of display server but needs
// write access to /dev/uinput.
type uinputExecutor struct {
	log action.Logger

	mu sync.Mutex
	f  *os.File
}

// NewUinputExecutor creates the virtual injection device.
func NewUinputExecutor(log action.Logger) (action.Executor, error) {
	f, err := os.OpenFile("/dev/uinput", os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: opening /dev/uinput: %v", ErrBackendUnavailable, err)
	}

	e := &uinputExecutor{log: log, f: f}
	if err := e.setup(); err != nil {
		f.Close()
		return nil, err
	}
	return e, nil
}

func (e *uinputExecutor) ioctl(req, val uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, e.f.Fd(), req, val)
	if errno != 0 {
		return errno
	}
	return nil
}

func (e *uinputExecutor) setup() error {
	if err := e.ioctl(uiSetEvBit, evKey); err != nil {
		return fmt.Errorf("enabling key events: %w", err)
	}
	if err := e.ioctl(uiSetEvBit, evRel); err != nil {
		return fmt.Errorf("enabling relative events: %w", err)
	}
	for _, axis := range []uintptr{relX, relY} {
		if err := e.ioctl(uiSetRelBit, axis); err != nil {
			return fmt.Errorf("enabling relative axis: %w", err)
		}
	}
	for _, code := range evdevCodes {
		if err := e.ioctl(uiSetKeyBit, uintptr(code)); err != nil {
			return fmt.Errorf("enabling key code %d: %w", code, err)
		}
	}
	for _, b := range []mouse.Button{
		mouse.ButtonLeft, mouse.ButtonRight, mouse.ButtonMiddle,
		mouse.ButtonBack, mouse.ButtonForward,
	} {
		code, _ := evdevButtonCode(b)
		if err := e.ioctl(uiSetKeyBit, uintptr(code)); err != nil {
			return fmt.Errorf("enabling button code %d: %w", code, err)
		}
	}

	// struct uinput_user_dev: name[80], input_id{bus,vendor,product,
	// version u16}, ff_effects_max u32, absmax/absmin/absfuzz/absflat
	// int32[64] each.
	var dev [80 + 8 + 4 + 4*64*4]byte
	copy(dev[:], "macrokey virtual input")
	binary.LittleEndian.PutUint16(dev[80:], 0x03) // BUS_USB
	binary.LittleEndian.PutUint16(dev[82:], 0x1)
	binary.LittleEndian.PutUint16(dev[84:], 0x1)
	binary.LittleEndian.PutUint16(dev[86:], 1)
	if _, err := e.f.Write(dev[:]); err != nil {
		return fmt.Errorf("writing device setup: %w", err)
	}
	if err := e.ioctl(uiDevCreate, 0); err != nil {
		return fmt.Errorf("creating device: %w", err)
	}

	// Give the system a moment to pick up the new device.
	time.Sleep(100 * time.Millisecond)
	return nil
}

// Close destroys the virtual device.
func (e *uinputExecutor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.f == nil {
		return nil
	}
	err := e.ioctl(uiDevDestroy, 0)
	if cerr := e.f.Close(); err == nil {
		err = cerr
	}
	e.f = nil
	return err
}

// writeEvent emits one input_event record followed by a SYN_REPORT.
func (e *uinputExecutor) writeEvent(typ, code uint16, value int32) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.f == nil {
		return ErrCaptureClosed
	}

	var buf [48]byte
	encode := func(off int, typ, code uint16, value int32) {
		binary.LittleEndian.PutUint16(buf[off+16:], typ)
		binary.LittleEndian.PutUint16(buf[off+18:], code)
		binary.LittleEndian.PutUint32(buf[off+20:], uint32(value))
	}
	encode(0, typ, code, value)
	encode(24, evSyn, 0, 0) // SYN_REPORT

	_, err := e.f.Write(buf[:])
	return err
}

func (e *uinputExecutor) SimulateKey(k key.Key, state action.State) error {
	code, ok := evdevCode(k)
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnmappedKey, k)
	}
	value := int32(keyPressed)
	if state == action.Release {
		value = keyReleased
	}
	return e.writeEvent(evKey, code, value)
}

func (e *uinputExecutor) SimulateMouse(b mouse.Button, state action.State) error {
	code, ok := evdevButtonCode(b)
	if !ok {
		return fmt.Errorf("%w: %v", ErrUnmappedButton, b)
	}
	value := int32(keyPressed)
	if state == action.Release {
		value = keyReleased
	}
	return e.writeEvent(evKey, code, value)
}

func (e *uinputExecutor) MouseMoveRel(dx, dy int) error {
	if err := e.writeEvent(evRel, relX, int32(dx)); err != nil {
		return err
	}
	return e.writeEvent(evRel, relY, int32(dy))
}

// MouseMoveAbs is approximated with a large sweep to the origin
// followed by a relative move; the virtual device has no absolute axes.
func (e *uinputExecutor) MouseMoveAbs(x, y int) error {
	if err := e.MouseMoveRel(-1<<15, -1<<15); err != nil {
		return err
	}
	return e.MouseMoveRel(x, y)
}
