package platform

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"golang.design/x/hotkey"

	"github.com/dshills/macrokey/internal/input"
	"github.com/dshills/macrokey/internal/input/key"
	"github.com/dshills/macrokey/internal/input/mouse"
)

// warnLogger records warning messages for assertions.
type warnLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *warnLogger) Debug(string, map[string]any) {}
func (l *warnLogger) Error(string, map[string]any) {}

func (l *warnLogger) Warn(msg string, fields map[string]any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, fmt.Sprintf("%s hotkey=%v", msg, fields["hotkey"]))
}

func (l *warnLogger) warnings() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.warns...)
}

func mustParseHotkey(t *testing.T, spec string) input.Hotkey {
	t.Helper()
	hk, err := input.ParseHotkey(spec)
	if err != nil {
		t.Fatalf("ParseHotkey(%q): %v", spec, err)
	}
	return hk
}

func TestOpenCaptureUnknownBackend(t *testing.T) {
	_, err := OpenCapture(Options{Backend: "telepathy"})
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("err = %v, want ErrUnknownBackend", err)
	}
}

func TestGohookButton(t *testing.T) {
	tests := []struct {
		raw  uint16
		want mouse.Button
	}{
		{1, mouse.ButtonLeft},
		{2, mouse.ButtonRight},
		{3, mouse.ButtonMiddle},
		{4, mouse.ButtonBack},
		{5, mouse.ButtonForward},
		{0, mouse.ButtonNone},
		{9, mouse.ButtonNone},
	}
	for _, tt := range tests {
		if got := gohookButton(tt.raw); got != tt.want {
			t.Errorf("gohookButton(%d) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}

func TestModifierKeysOrder(t *testing.T) {
	got := modifierKeys(key.ModShift | key.ModCtrl | key.ModMeta)
	want := []key.Key{key.KeyCtrl, key.KeyShift, key.KeyMeta}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestReserveCaptureSkipsDeniedHotkeys(t *testing.T) {
	log := &warnLogger{}
	hotkeys := []input.Hotkey{
		mustParseHotkey(t, "ctrl+a"),
		mustParseHotkey(t, "ctrl+b"),
	}

	// The first registration is denied, as when another process
	// already holds the combo. The backend must keep going.
	calls := 0
	register := func(*hotkey.Hotkey) error {
		calls++
		if calls == 1 {
			return errors.New("hotkey already registered")
		}
		return nil
	}
	unregistered := 0
	unregister := func(*hotkey.Hotkey) { unregistered++ }

	c, err := buildReserveCapture(hotkeys, log, register, unregister)
	if err != nil {
		t.Fatalf("buildReserveCapture: %v", err)
	}
	defer c.Close()

	if calls != 2 {
		t.Errorf("register called %d times, want 2", calls)
	}
	warns := log.warnings()
	if len(warns) != 1 {
		t.Fatalf("got %d warnings, want 1: %v", len(warns), warns)
	}
	if !strings.Contains(warns[0], "ctrl+a") {
		t.Errorf("warning should name the denied hotkey: %q", warns[0])
	}

	if err := c.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
	if unregistered != 1 {
		t.Errorf("unregistered %d hotkeys, want 1 (only the granted one)", unregistered)
	}
}

func TestReserveCaptureAllDenied(t *testing.T) {
	log := &warnLogger{}
	hotkeys := []input.Hotkey{mustParseHotkey(t, "ctrl+a")}

	register := func(*hotkey.Hotkey) error {
		return errors.New("hotkey already registered")
	}
	_, err := buildReserveCapture(hotkeys, log, register, func(*hotkey.Hotkey) {})
	if !errors.Is(err, ErrBackendUnavailable) {
		t.Errorf("err = %v, want ErrBackendUnavailable", err)
	}
}

func TestReserveKeysCoverLetters(t *testing.T) {
	for k := key.KeyA; k <= key.KeyZ; k++ {
		if _, ok := reserveKeys[k]; !ok {
			t.Errorf("letter %v missing from reserve table", k)
		}
	}
	for k := key.Key0; k <= key.Key9; k++ {
		if _, ok := reserveKeys[k]; !ok {
			t.Errorf("digit %v missing from reserve table", k)
		}
	}
}
