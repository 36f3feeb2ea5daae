//go:build linux

package platform

import (
	"testing"

	"github.com/dshills/macrokey/internal/input/key"
	"github.com/dshills/macrokey/internal/input/mouse"
)

func TestEvdevRoundTrip(t *testing.T) {
	for k, code := range evdevCodes {
		if got := evdevKey(code); got != k {
			t.Errorf("evdevKey(%d) = %v, want %v", code, got, k)
		}
	}
}

func TestEvdevRightModifierVariants(t *testing.T) {
	tests := []struct {
		code uint16
		want key.Key
	}{
		{54, key.KeyShift},
		{97, key.KeyCtrl},
		{100, key.KeyAlt},
		{126, key.KeyMeta},
	}
	for _, tt := range tests {
		if got := evdevKey(tt.code); got != tt.want {
			t.Errorf("evdevKey(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestEvdevButtonRoundTrip(t *testing.T) {
	buttons := []mouse.Button{
		mouse.ButtonLeft, mouse.ButtonRight, mouse.ButtonMiddle,
		mouse.ButtonBack, mouse.ButtonForward,
	}
	for _, b := range buttons {
		code, ok := evdevButtonCode(b)
		if !ok {
			t.Fatalf("no code for %v", b)
		}
		if got := evdevButton(code); got != b {
			t.Errorf("evdevButton(%#x) = %v, want %v", code, got, b)
		}
	}
	if _, ok := evdevButtonCode(mouse.ButtonNone); ok {
		t.Error("ButtonNone should not map to a code")
	}
}
