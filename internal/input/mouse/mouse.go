// Package mouse defines the closed mouse button vocabulary.
package mouse

import "strings"

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
	// ButtonBack is the back side button (mouse button 4).
	ButtonBack
	// ButtonForward is the forward side button (mouse button 5).
	ButtonForward
)

// String returns a string representation of the button.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	case ButtonBack:
		return "back"
	case ButtonForward:
		return "forward"
	default:
		return "none"
	}
}

// buttonNameMap maps button names (lowercase) to Button values.
var buttonNameMap = map[string]Button{
	"left":    ButtonLeft,
	"mouse1":  ButtonLeft,
	"right":   ButtonRight,
	"mouse2":  ButtonRight,
	"middle":  ButtonMiddle,
	"mouse3":  ButtonMiddle,
	"back":    ButtonBack,
	"mouse4":  ButtonBack,
	"forward": ButtonForward,
	"mouse5":  ButtonForward,
}

// FromName returns the Button for a given name (case-insensitive).
// Returns ButtonNone if the name is not recognized.
func FromName(name string) Button {
	if b, ok := buttonNameMap[strings.ToLower(strings.TrimSpace(name))]; ok {
		return b
	}
	return ButtonNone
}
