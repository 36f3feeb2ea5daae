package input

import (
	"time"

	"github.com/dshills/macrokey/internal/input/key"
	"github.com/dshills/macrokey/internal/input/mouse"
)

// EventType discriminates raw input events.
type EventType uint8

const (
	// EventNone is the zero event type.
	EventNone EventType = iota
	// EventKeyPress indicates a key transitioned to pressed.
	EventKeyPress
	// EventKeyRelease indicates a key transitioned to released.
	EventKeyRelease
	// EventMousePress indicates a mouse button transitioned to pressed.
	EventMousePress
	// EventMouseRelease indicates a mouse button transitioned to released.
	EventMouseRelease
	// EventMouseMove indicates pointer movement.
	EventMouseMove
)

// String returns a string representation of the event type.
func (t EventType) String() string {
	switch t {
	case EventKeyPress:
		return "key-press"
	case EventKeyRelease:
		return "key-release"
	case EventMousePress:
		return "mouse-press"
	case EventMouseRelease:
		return "mouse-release"
	case EventMouseMove:
		return "mouse-move"
	default:
		return "none"
	}
}

// Event is a single raw input event from the capture layer.
type Event struct {
	Type   EventType
	Key    key.Key
	Button mouse.Button
	X, Y   int
	Time   time.Time
}

// KeyPress returns a key press event.
func KeyPress(k key.Key) Event {
	return Event{Type: EventKeyPress, Key: k, Time: time.Now()}
}

// KeyRelease returns a key release event.
func KeyRelease(k key.Key) Event {
	return Event{Type: EventKeyRelease, Key: k, Time: time.Now()}
}

// MousePress returns a mouse button press event.
func MousePress(b mouse.Button) Event {
	return Event{Type: EventMousePress, Button: b, Time: time.Now()}
}

// MouseRelease returns a mouse button release event.
func MouseRelease(b mouse.Button) Event {
	return Event{Type: EventMouseRelease, Button: b, Time: time.Now()}
}

// MouseMove returns a pointer move event.
func MouseMove(x, y int) Event {
	return Event{Type: EventMouseMove, X: x, Y: y, Time: time.Now()}
}

// IsPress returns true for key and mouse press events.
func (e Event) IsPress() bool {
	return e.Type == EventKeyPress || e.Type == EventMousePress
}

// IsRelease returns true for key and mouse release events.
func (e Event) IsRelease() bool {
	return e.Type == EventKeyRelease || e.Type == EventMouseRelease
}

// Trigger returns the trigger this event transitions, or the zero trigger
// for move events.
func (e Event) Trigger() Trigger {
	switch e.Type {
	case EventKeyPress, EventKeyRelease:
		return KeyTrigger(e.Key)
	case EventMousePress, EventMouseRelease:
		return ButtonTrigger(e.Button)
	default:
		return Trigger{}
	}
}
