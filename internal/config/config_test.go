package config

import (
	"errors"
	"testing"
	"time"

	"github.com/dshills/macrokey/internal/action"
	"github.com/dshills/macrokey/internal/input"
	"github.com/dshills/macrokey/internal/input/key"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte(""))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.Backend != "auto" {
		t.Errorf("Backend = %q, want auto", cfg.Backend)
	}
	if cfg.Swallow {
		t.Error("Swallow should default to false")
	}
}

func TestParseInvalidTOML(t *testing.T) {
	_, err := Parse([]byte("log_level = [broken"))
	if !errors.Is(err, ErrParse) {
		t.Errorf("err = %v, want ErrParse", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load("/nonexistent/macrokey.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("missing file should yield defaults, got %+v", cfg)
	}
}

func TestCompileBindings(t *testing.T) {
	src := `
log_level = "debug"
swallow = true

[[binding]]
keys = "ctrl+shift+p"
action = { type = "text", text = "hello" }

[[binding]]
keys = "mouse4"
swallow = false

[binding.action]
type = "seq"

[[binding.action.steps]]
type = "press"
key = "a"

[[binding.action.steps]]
type = "delay"
ms = 50
`
	cfg, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	bindings, err := cfg.CompileBindings()
	if err != nil {
		t.Fatalf("CompileBindings: %v", err)
	}
	if len(bindings) != 2 {
		t.Fatalf("got %d bindings, want 2", len(bindings))
	}

	first := bindings[0]
	want := input.Combo(key.ModCtrl|key.ModShift, input.KeyTrigger(key.KeyP))
	if first.Hotkey != want {
		t.Errorf("hotkey = %v, want %v", first.Hotkey, want)
	}
	if first.Action.Kind != action.KindTypeText || first.Action.Text != "hello" {
		t.Errorf("action = %v", first.Action)
	}
	if !first.Swallow {
		t.Error("first binding should inherit global swallow")
	}

	second := bindings[1]
	if second.Swallow {
		t.Error("second binding overrides swallow to false")
	}
	if second.Action.Kind != action.KindSequence || len(second.Action.Steps) != 2 {
		t.Fatalf("second action = %v", second.Action)
	}
	if second.Action.Steps[1].Min != 50*time.Millisecond {
		t.Errorf("delay = %v, want 50ms", second.Action.Steps[1].Min)
	}
}

func TestCompileActionSpec(t *testing.T) {
	tests := []struct {
		name    string
		spec    *ActionSpec
		kind    action.Kind
		wantErr error
	}{
		{"press", &ActionSpec{Type: "press", Key: "a"}, action.KindPressKey, nil},
		{"hold", &ActionSpec{Type: "hold", Key: "shift"}, action.KindHoldKey, nil},
		{"release", &ActionSpec{Type: "release", Key: "shift"}, action.KindReleaseKey, nil},
		{"click", &ActionSpec{Type: "click", Button: "left"}, action.KindClick, nil},
		{"text", &ActionSpec{Type: "text", Text: "x"}, action.KindTypeText, nil},
		{"delay", &ActionSpec{Type: "delay", Ms: 10}, action.KindDelay, nil},
		{"random delay", &ActionSpec{Type: "random_delay", MinMs: 5, MaxMs: 10}, action.KindRandomDelay, nil},
		{
			"repeat",
			&ActionSpec{Type: "repeat", IntervalMs: 100, Steps: []*ActionSpec{{Type: "press", Key: "w"}}},
			action.KindRepeatWhileHeld, nil,
		},
		{"unknown type", &ActionSpec{Type: "warp"}, 0, ErrUnknownActionType},
		{"unknown key", &ActionSpec{Type: "press", Key: "hyperspace"}, 0, ErrUnknownKey},
		{"unknown button", &ActionSpec{Type: "click", Button: "mouse9"}, 0, ErrUnknownButton},
		{"empty text rejected", &ActionSpec{Type: "text"}, 0, action.ErrEmptyText},
		{"inverted range rejected", &ActionSpec{Type: "random_delay", MinMs: 10, MaxMs: 5}, 0, action.ErrInvalidRange},
		{
			"nested repeat rejected",
			&ActionSpec{Type: "repeat", IntervalMs: 10, Steps: []*ActionSpec{
				{Type: "repeat", IntervalMs: 10, Steps: []*ActionSpec{{Type: "press", Key: "a"}}},
			}},
			0, action.ErrNestedRepeat,
		},
		{
			"repeat inside sequence rejected",
			&ActionSpec{Type: "seq", Steps: []*ActionSpec{
				{Type: "press", Key: "a"},
				{Type: "repeat", IntervalMs: 10, Steps: []*ActionSpec{{Type: "press", Key: "b"}}},
			}},
			0, action.ErrNestedRepeat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			act, err := tt.spec.Compile()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Compile: %v", err)
			}
			if act.Kind != tt.kind {
				t.Errorf("kind = %v, want %v", act.Kind, tt.kind)
			}
		})
	}
}

func TestCompileBindingErrors(t *testing.T) {
	tests := []struct {
		name    string
		spec    BindingSpec
		wantErr error
	}{
		{"no keys", BindingSpec{Action: &ActionSpec{Type: "press", Key: "a"}}, ErrNoKeys},
		{"no action", BindingSpec{Keys: "ctrl+a"}, ErrNoAction},
		{"bad hotkey", BindingSpec{Keys: "hyper+a", Action: &ActionSpec{Type: "press", Key: "a"}}, input.ErrUnknownModifier},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Bindings = []BindingSpec{tt.spec}
			_, err := cfg.CompileBindings()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
