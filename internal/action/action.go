package action

import (
	"fmt"
	"strings"
	"time"

	"github.com/dshills/macrokey/internal/input/key"
	"github.com/dshills/macrokey/internal/input/mouse"
)

// Kind discriminates the action tree variants.
type Kind uint8

const (
	// KindNone is the zero action kind.
	KindNone Kind = iota
	// KindPressKey presses and releases a key.
	KindPressKey
	// KindClick presses and releases a mouse button.
	KindClick
	// KindHoldKey presses a key without releasing it.
	KindHoldKey
	// KindReleaseKey releases a previously held key.
	KindReleaseKey
	// KindTypeText types a text string character by character.
	KindTypeText
	// KindDelay suspends the current branch for a fixed duration.
	KindDelay
	// KindRandomDelay suspends for a duration drawn uniformly from a range.
	KindRandomDelay
	// KindSequence executes child actions strictly in order.
	KindSequence
	// KindRepeatWhileHeld re-executes its steps while the trigger is held.
	KindRepeatWhileHeld
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindPressKey:
		return "press"
	case KindClick:
		return "click"
	case KindHoldKey:
		return "hold"
	case KindReleaseKey:
		return "release"
	case KindTypeText:
		return "text"
	case KindDelay:
		return "delay"
	case KindRandomDelay:
		return "random-delay"
	case KindSequence:
		return "sequence"
	case KindRepeatWhileHeld:
		return "repeat-while-held"
	default:
		return "none"
	}
}

// Action is a node in the recursive action tree bound to a hotkey.
// Trees are acyclic, owned top-down by the binding registry, and immutable
// once registered.
type Action struct {
	Kind     Kind
	Key      key.Key
	Button   mouse.Button
	Text     string
	Min      time.Duration
	Max      time.Duration
	Interval time.Duration
	Steps    []*Action
}

// PressKey returns an action that presses and releases a key.
func PressKey(k key.Key) *Action {
	return &Action{Kind: KindPressKey, Key: k}
}

// Click returns an action that presses and releases a mouse button.
func Click(b mouse.Button) *Action {
	return &Action{Kind: KindClick, Button: b}
}

// HoldKey returns an action that presses a key without releasing it.
func HoldKey(k key.Key) *Action {
	return &Action{Kind: KindHoldKey, Key: k}
}

// ReleaseKey returns an action that releases a held key.
func ReleaseKey(k key.Key) *Action {
	return &Action{Kind: KindReleaseKey, Key: k}
}

// TypeText returns an action that types a string.
func TypeText(text string) *Action {
	return &Action{Kind: KindTypeText, Text: text}
}

// Delay returns an action that suspends for a fixed duration.
func Delay(d time.Duration) *Action {
	return &Action{Kind: KindDelay, Min: d, Max: d}
}

// RandomDelay returns an action that suspends for a uniformly random
// duration in [min, max].
func RandomDelay(min, max time.Duration) *Action {
	return &Action{Kind: KindRandomDelay, Min: min, Max: max}
}

// Sequence returns an action that executes steps strictly in order.
func Sequence(steps ...*Action) *Action {
	return &Action{Kind: KindSequence, Steps: steps}
}

// RepeatWhileHeld returns an action that executes steps as a sequence,
// pauses for interval, and repeats until its trigger is released.
func RepeatWhileHeld(interval time.Duration, steps ...*Action) *Action {
	return &Action{Kind: KindRepeatWhileHeld, Interval: interval, Steps: steps}
}

// Validate checks the structural invariants of the tree. A
// repeat-while-held node is only valid as the root of a binding's
// tree; at any depth below that it fails with ErrNestedRepeat.
func (a *Action) Validate() error {
	return a.validate(true)
}

func (a *Action) validate(root bool) error {
	if a == nil {
		return ErrNilAction
	}
	switch a.Kind {
	case KindPressKey, KindHoldKey, KindReleaseKey:
		if a.Key == key.KeyNone {
			return fmt.Errorf("%s: %w", a.Kind, ErrNoKey)
		}
	case KindClick:
		if a.Button == mouse.ButtonNone {
			return fmt.Errorf("%s: %w", a.Kind, ErrNoButton)
		}
	case KindTypeText:
		if a.Text == "" {
			return fmt.Errorf("%s: %w", a.Kind, ErrEmptyText)
		}
	case KindDelay:
		if a.Min < 0 {
			return fmt.Errorf("%s: %w", a.Kind, ErrNegativeDuration)
		}
	case KindRandomDelay:
		if a.Min < 0 {
			return fmt.Errorf("%s: %w", a.Kind, ErrNegativeDuration)
		}
		if a.Min > a.Max {
			return fmt.Errorf("%s: %w (min %v > max %v)", a.Kind, ErrInvalidRange, a.Min, a.Max)
		}
	case KindSequence:
		for i, step := range a.Steps {
			if err := step.validate(false); err != nil {
				return fmt.Errorf("sequence step %d: %w", i, err)
			}
		}
	case KindRepeatWhileHeld:
		if !root {
			return fmt.Errorf("%s: %w", a.Kind, ErrNestedRepeat)
		}
		if a.Interval <= 0 {
			return fmt.Errorf("%s: %w", a.Kind, ErrNoInterval)
		}
		for i, step := range a.Steps {
			if err := step.validate(false); err != nil {
				return fmt.Errorf("repeat step %d: %w", i, err)
			}
		}
	default:
		return fmt.Errorf("%w: kind %d", ErrInvalidKind, a.Kind)
	}
	return nil
}

// String returns a compact representation for logging.
func (a *Action) String() string {
	if a == nil {
		return "<nil>"
	}
	switch a.Kind {
	case KindPressKey, KindHoldKey, KindReleaseKey:
		return fmt.Sprintf("%s(%s)", a.Kind, a.Key)
	case KindClick:
		return fmt.Sprintf("click(%s)", a.Button)
	case KindTypeText:
		return fmt.Sprintf("text(%q)", a.Text)
	case KindDelay:
		return fmt.Sprintf("delay(%v)", a.Min)
	case KindRandomDelay:
		return fmt.Sprintf("random-delay(%v,%v)", a.Min, a.Max)
	case KindSequence, KindRepeatWhileHeld:
		parts := make([]string, len(a.Steps))
		for i, step := range a.Steps {
			parts[i] = step.String()
		}
		return fmt.Sprintf("%s[%s]", a.Kind, strings.Join(parts, " "))
	default:
		return a.Kind.String()
	}
}
