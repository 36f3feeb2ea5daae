package action

import (
	"context"
	"sync"
	"testing"
)

// warnRecorder captures Warn calls for assertions.
type warnRecorder struct {
	mu    sync.Mutex
	warns []string
}

func (w *warnRecorder) Debug(string, map[string]any) {}
func (w *warnRecorder) Error(string, map[string]any) {}
func (w *warnRecorder) Warn(msg string, fields map[string]any) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.warns = append(w.warns, msg)
}

func TestTypeTextShiftBracketing(t *testing.T) {
	rec := NewRecorder()
	in := NewInterpreter(rec, nil)

	if err := in.Run(context.Background(), TypeText("Hi!")); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Every shifted character is individually bracketed by shift.
	want := []string{
		"press:shift", "press:h", "release:h", "release:shift",
		"press:i", "release:i",
		"press:shift", "press:1", "release:1", "release:shift",
	}
	if got := rec.Strings(); !equalStrings(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
}

func TestTypeTextLowercaseAndDigits(t *testing.T) {
	rec := NewRecorder()
	in := NewInterpreter(rec, nil)

	if err := in.Run(context.Background(), TypeText("a1 ")); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{
		"press:a", "release:a",
		"press:1", "release:1",
		"press:space", "release:space",
	}
	if got := rec.Strings(); !equalStrings(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
}

func TestTypeTextPunctuation(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"?", []string{"press:shift", "press:/", "release:/", "release:shift"}},
		{",", []string{"press:,", "release:,"}},
		{"_", []string{"press:shift", "press:-", "release:-", "release:shift"}},
		{"\n", []string{"press:enter", "release:enter"}},
		{"\t", []string{"press:tab", "release:tab"}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			rec := NewRecorder()
			in := NewInterpreter(rec, nil)
			if err := in.Run(context.Background(), TypeText(tt.text)); err != nil {
				t.Fatalf("Run: %v", err)
			}
			if got := rec.Strings(); !equalStrings(got, tt.want) {
				t.Errorf("calls = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTypeTextSkipsUnmappedCharacters(t *testing.T) {
	rec := NewRecorder()
	warns := &warnRecorder{}
	in := NewInterpreter(rec, warns)

	// The unmapped characters are skipped with a warning each; the rest
	// of the string continues.
	if err := in.Run(context.Background(), TypeText("aébñc")); err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{
		"press:a", "release:a",
		"press:b", "release:b",
		"press:c", "release:c",
	}
	if got := rec.Strings(); !equalStrings(got, want) {
		t.Errorf("calls = %v, want %v", got, want)
	}
	if len(warns.warns) != 2 {
		t.Errorf("warnings = %d, want 2 (one per unmapped character)", len(warns.warns))
	}
}

func TestLookupCharCoversPrintableASCII(t *testing.T) {
	for r := rune(' '); r <= '~'; r++ {
		if _, ok := lookupChar(r); !ok {
			t.Errorf("printable ASCII %q is unmapped", r)
		}
	}
}
