package platform

import (
	"strings"
	"sync"

	hook "github.com/robotn/gohook"

	"github.com/dshills/macrokey/internal/action"
	"github.com/dshills/macrokey/internal/input"
	"github.com/dshills/macrokey/internal/input/key"
	"github.com/dshills/macrokey/internal/input/mouse"
)

// gohookCapture observes global input through the gohook event hook.
// It works on Windows, macOS and X11 Linux. The hook is observe-only,
// so swallow verdicts are advisory under this backend.
type gohookCapture struct {
	log    action.Logger
	events chan input.Event

	mu     sync.Mutex
	closed bool
	done   chan struct{}
}

func newGohookCapture(log action.Logger) (Capture, error) {
	c := &gohookCapture{
		log:    log,
		events: make(chan input.Event, 128),
		done:   make(chan struct{}),
	}
	go c.pump(hook.Start())
	return c, nil
}

func (c *gohookCapture) Name() string { return "gohook" }

func (c *gohookCapture) Events() <-chan input.Event { return c.events }

func (c *gohookCapture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	hook.End()
	<-c.done
	return nil
}

func (c *gohookCapture) pump(raw chan hook.Event) {
	defer close(c.done)
	defer close(c.events)

	for ev := range raw {
		out, ok := c.translate(ev)
		if !ok {
			continue
		}
		select {
		case c.events <- out:
		default:
			c.log.Warn("event buffer full, dropping event", map[string]any{
				"event": out.Type,
			})
		}
	}
}

func (c *gohookCapture) translate(ev hook.Event) (input.Event, bool) {
	switch ev.Kind {
	case hook.KeyDown, hook.KeyHold:
		// KeyHold is OS auto-repeat, delivered as a press.
		k := gohookKey(ev.Rawcode)
		if k == key.KeyNone {
			return input.Event{}, false
		}
		return input.KeyPress(k), true

	case hook.KeyUp:
		k := gohookKey(ev.Rawcode)
		if k == key.KeyNone {
			return input.Event{}, false
		}
		return input.KeyRelease(k), true

	case hook.MouseDown:
		b := gohookButton(ev.Button)
		if b == mouse.ButtonNone {
			return input.Event{}, false
		}
		return input.MousePress(b), true

	case hook.MouseUp:
		b := gohookButton(ev.Button)
		if b == mouse.ButtonNone {
			return input.Event{}, false
		}
		return input.MouseRelease(b), true

	case hook.MouseMove, hook.MouseDrag:
		return input.MouseMove(int(ev.X), int(ev.Y)), true
	}
	return input.Event{}, false
}

// gohookKey maps a platform raw keycode to a key through gohook's
// rawcode tables.
func gohookKey(rawcode uint16) key.Key {
	name := strings.ToLower(hook.RawcodetoKeychar(rawcode))
	return key.FromName(name)
}

func gohookButton(b uint16) mouse.Button {
	switch b {
	case 1:
		return mouse.ButtonLeft
	case 2:
		return mouse.ButtonRight
	case 3:
		return mouse.ButtonMiddle
	case 4:
		return mouse.ButtonBack
	case 5:
		return mouse.ButtonForward
	}
	return mouse.ButtonNone
}
