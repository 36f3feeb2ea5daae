package platform

import (
	"fmt"
	"sync"

	"golang.design/x/hotkey"

	"github.com/dshills/macrokey/internal/action"
	"github.com/dshills/macrokey/internal/input"
	"github.com/dshills/macrokey/internal/input/key"
)

// reserveKeys maps trigger keys to OS hotkey registration codes. Only
// keys the OS hotkey API can reserve appear here.
var reserveKeys = map[key.Key]hotkey.Key{
	key.KeyA: hotkey.KeyA, key.KeyB: hotkey.KeyB, key.KeyC: hotkey.KeyC,
	key.KeyD: hotkey.KeyD, key.KeyE: hotkey.KeyE, key.KeyF: hotkey.KeyF,
	key.KeyG: hotkey.KeyG, key.KeyH: hotkey.KeyH, key.KeyI: hotkey.KeyI,
	key.KeyJ: hotkey.KeyJ, key.KeyK: hotkey.KeyK, key.KeyL: hotkey.KeyL,
	key.KeyM: hotkey.KeyM, key.KeyN: hotkey.KeyN, key.KeyO: hotkey.KeyO,
	key.KeyP: hotkey.KeyP, key.KeyQ: hotkey.KeyQ, key.KeyR: hotkey.KeyR,
	key.KeyS: hotkey.KeyS, key.KeyT: hotkey.KeyT, key.KeyU: hotkey.KeyU,
	key.KeyV: hotkey.KeyV, key.KeyW: hotkey.KeyW, key.KeyX: hotkey.KeyX,
	key.KeyY: hotkey.KeyY, key.KeyZ: hotkey.KeyZ,

	key.Key0: hotkey.Key0, key.Key1: hotkey.Key1, key.Key2: hotkey.Key2,
	key.Key3: hotkey.Key3, key.Key4: hotkey.Key4, key.Key5: hotkey.Key5,
	key.Key6: hotkey.Key6, key.Key7: hotkey.Key7, key.Key8: hotkey.Key8,
	key.Key9: hotkey.Key9,

	key.KeyF1: hotkey.KeyF1, key.KeyF2: hotkey.KeyF2, key.KeyF3: hotkey.KeyF3,
	key.KeyF4: hotkey.KeyF4, key.KeyF5: hotkey.KeyF5, key.KeyF6: hotkey.KeyF6,
	key.KeyF7: hotkey.KeyF7, key.KeyF8: hotkey.KeyF8, key.KeyF9: hotkey.KeyF9,
	key.KeyF10: hotkey.KeyF10, key.KeyF11: hotkey.KeyF11, key.KeyF12: hotkey.KeyF12,

	key.KeySpace:  hotkey.KeySpace,
	key.KeyTab:    hotkey.KeyTab,
	key.KeyEnter:  hotkey.KeyReturn,
	key.KeyEscape: hotkey.KeyEscape,
	key.KeyUp:     hotkey.KeyUp,
	key.KeyDown:   hotkey.KeyDown,
	key.KeyLeft:   hotkey.KeyLeft,
	key.KeyRight:  hotkey.KeyRight,
}

// reserveCapture registers each bound hotkey with the OS instead of
// observing the full input stream. Reserved combos are swallowed by
// the OS, so this backend never passes them through. Hotkeys that
// cannot be reserved, including combos another process already holds,
// are skipped with a warning; their bindings stay registered and work
// under an observing backend.
type reserveCapture struct {
	log        action.Logger
	events     chan input.Event
	unregister func(*hotkey.Hotkey)

	mu     sync.Mutex
	hks    []*hotkey.Hotkey
	closed bool
	stop   chan struct{}
	wg     sync.WaitGroup
}

func newReserveCapture(hotkeys []input.Hotkey, log action.Logger) (Capture, error) {
	return buildReserveCapture(hotkeys, log,
		(*hotkey.Hotkey).Register,
		func(reg *hotkey.Hotkey) { reg.Unregister() })
}

func buildReserveCapture(
	hotkeys []input.Hotkey,
	log action.Logger,
	register func(*hotkey.Hotkey) error,
	unregister func(*hotkey.Hotkey),
) (Capture, error) {
	c := &reserveCapture{
		log:        log,
		events:     make(chan input.Event, 128),
		unregister: unregister,
		stop:       make(chan struct{}),
	}

	for _, hk := range hotkeys {
		if hk.Trigger.Kind != input.TriggerKey {
			log.Warn("reserve backend cannot register mouse triggers", map[string]any{
				"hotkey": hk.String(),
			})
			continue
		}
		code, ok := reserveKeys[hk.Trigger.Key]
		if !ok {
			log.Warn("key cannot be reserved with the OS", map[string]any{
				"hotkey": hk.String(),
			})
			continue
		}

		reg := hotkey.New(reserveModifiers(hk.Mods), code)
		if err := register(reg); err != nil {
			log.Warn("hotkey registration denied, skipping", map[string]any{
				"hotkey": hk.String(),
				"error":  err.Error(),
			})
			continue
		}
		c.hks = append(c.hks, reg)
		c.wg.Add(1)
		go c.pump(reg, hk)
	}
	if len(c.hks) == 0 {
		c.Close()
		return nil, fmt.Errorf("%w: no registrable hotkeys", ErrBackendUnavailable)
	}

	go func() {
		c.wg.Wait()
		close(c.events)
	}()
	return c, nil
}

func (c *reserveCapture) Name() string { return "reserve" }

func (c *reserveCapture) Events() <-chan input.Event { return c.events }

func (c *reserveCapture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	close(c.stop)
	for _, reg := range c.hks {
		c.unregister(reg)
	}
	return nil
}

// pump synthesizes press and release events for a reserved hotkey. The
// OS only reports chord down and chord up, so the modifier presses are
// reconstructed around the trigger.
func (c *reserveCapture) pump(reg *hotkey.Hotkey, hk input.Hotkey) {
	defer c.wg.Done()
	for {
		select {
		case <-c.stop:
			return
		case <-reg.Keydown():
			for _, mk := range modifierKeys(hk.Mods) {
				c.emit(input.KeyPress(mk))
			}
			c.emit(input.KeyPress(hk.Trigger.Key))
		case <-reg.Keyup():
			c.emit(input.KeyRelease(hk.Trigger.Key))
			mods := modifierKeys(hk.Mods)
			for i := len(mods) - 1; i >= 0; i-- {
				c.emit(input.KeyRelease(mods[i]))
			}
		}
	}
}

func (c *reserveCapture) emit(ev input.Event) {
	select {
	case c.events <- ev:
	case <-c.stop:
	}
}

func modifierKeys(mods key.Modifier) []key.Key {
	var keys []key.Key
	for _, m := range []key.Modifier{key.ModCtrl, key.ModAlt, key.ModShift, key.ModMeta} {
		if mods.Has(m) {
			keys = append(keys, key.KeyFromModifier(m))
		}
	}
	return keys
}
