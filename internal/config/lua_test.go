package config

import (
	"errors"
	"testing"
	"time"

	"github.com/dshills/macrokey/internal/action"
	"github.com/dshills/macrokey/internal/input"
	"github.com/dshills/macrokey/internal/input/key"
	"github.com/dshills/macrokey/internal/input/mouse"
)

func TestScriptBind(t *testing.T) {
	eng := NewScriptEngine(false)
	err := eng.RunString(`
bind("ctrl+shift+v", seq(
	press("home"),
	text("hello"),
	delay(25)
))
bind("mouse4", click("left"), { swallow = true })
`)
	if err != nil {
		t.Fatalf("RunString: %v", err)
	}

	bindings := eng.Bindings()
	if len(bindings) != 2 {
		t.Fatalf("got %d bindings, want 2", len(bindings))
	}

	first := bindings[0]
	want := input.Combo(key.ModCtrl|key.ModShift, input.KeyTrigger(key.KeyV))
	if first.Hotkey != want {
		t.Errorf("hotkey = %v, want %v", first.Hotkey, want)
	}
	if first.Action.Kind != action.KindSequence || len(first.Action.Steps) != 3 {
		t.Fatalf("action = %v", first.Action)
	}
	if first.Action.Steps[2].Min != 25*time.Millisecond {
		t.Errorf("delay = %v, want 25ms", first.Action.Steps[2].Min)
	}
	if first.Swallow {
		t.Error("first binding should use the engine default")
	}

	second := bindings[1]
	if second.Hotkey != input.ForButton(mouse.ButtonBack) {
		t.Errorf("hotkey = %v, want mouse:back", second.Hotkey)
	}
	if !second.Swallow {
		t.Error("second binding sets swallow = true")
	}
}

func TestScriptRepeatWhileHeld(t *testing.T) {
	eng := NewScriptEngine(false)
	err := eng.RunString(`bind("w", repeat_while_held(100, press("w"), random_delay(5, 15)))`)
	if err != nil {
		t.Fatalf("RunString: %v", err)
	}
	act := eng.Bindings()[0].Action
	if act.Kind != action.KindRepeatWhileHeld {
		t.Fatalf("kind = %v", act.Kind)
	}
	if act.Interval != 100*time.Millisecond {
		t.Errorf("interval = %v", act.Interval)
	}
	if len(act.Steps) != 2 || act.Steps[1].Kind != action.KindRandomDelay {
		t.Errorf("steps = %v", act.Steps)
	}
}

func TestScriptDefaultSwallow(t *testing.T) {
	eng := NewScriptEngine(true)
	if err := eng.RunString(`bind("a", press("b"))`); err != nil {
		t.Fatalf("RunString: %v", err)
	}
	if !eng.Bindings()[0].Swallow {
		t.Error("binding should inherit engine default swallow")
	}
}

func TestScriptErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax error", `bind("a"`},
		{"unknown key", `bind("a", press("hyperspace"))`},
		{"bad hotkey", `bind("hyper+a", press("a"))`},
		{"invalid action", `bind("a", repeat_while_held(100, repeat_while_held(50, press("a"))))`},
		{"not an action", `bind("a", "press a")`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := NewScriptEngine(false)
			err := eng.RunString(tt.src)
			if !errors.Is(err, ErrScript) {
				t.Errorf("err = %v, want ErrScript", err)
			}
			if len(eng.Bindings()) != 0 {
				t.Errorf("failed script registered %d bindings", len(eng.Bindings()))
			}
		})
	}
}
