package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/macrokey/internal/action"
	"github.com/dshills/macrokey/internal/input"
	"github.com/dshills/macrokey/internal/input/key"
	"github.com/dshills/macrokey/internal/input/mouse"
)

// Config is the top-level daemon configuration.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`

	// Backend selects the capture backend ("auto" by default).
	Backend string `toml:"backend"`

	// Swallow is the default pass-through policy for bindings that do
	// not set their own.
	Swallow bool `toml:"swallow"`

	// Scripts are Lua binding scripts loaded after the TOML bindings.
	Scripts []string `toml:"scripts"`

	// Bindings are the declarative hotkey bindings.
	Bindings []BindingSpec `toml:"binding"`
}

// BindingSpec declares one hotkey binding.
type BindingSpec struct {
	// Keys is the hotkey spec, e.g. "ctrl+shift+p" or "mouse4".
	Keys string `toml:"keys"`

	// Swallow overrides the global pass-through policy for this binding.
	Swallow *bool `toml:"swallow"`

	// Action is the action tree to execute.
	Action *ActionSpec `toml:"action"`
}

// ActionSpec is the declarative form of an action tree node.
type ActionSpec struct {
	Type       string        `toml:"type"`
	Key        string        `toml:"key"`
	Button     string        `toml:"button"`
	Text       string        `toml:"text"`
	Ms         int64         `toml:"ms"`
	MinMs      int64         `toml:"min_ms"`
	MaxMs      int64         `toml:"max_ms"`
	IntervalMs int64         `toml:"interval_ms"`
	Steps      []*ActionSpec `toml:"steps"`
}

// CompiledBinding is a binding ready for registration.
type CompiledBinding struct {
	Hotkey  input.Hotkey
	Action  *action.Action
	Swallow bool
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Backend:  "auto",
	}
}

// Load reads a TOML configuration file. A missing file yields the default
// configuration, not an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses TOML configuration data.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return cfg, nil
}

// CompileBindings compiles the declarative bindings into registrable form.
// Lua script bindings are appended by the caller after these.
func (c *Config) CompileBindings() ([]CompiledBinding, error) {
	out := make([]CompiledBinding, 0, len(c.Bindings))
	for i, spec := range c.Bindings {
		cb, err := c.compileBinding(spec)
		if err != nil {
			return nil, fmt.Errorf("binding %d (%q): %w", i, spec.Keys, err)
		}
		out = append(out, cb)
	}
	return out, nil
}

func (c *Config) compileBinding(spec BindingSpec) (CompiledBinding, error) {
	if spec.Keys == "" {
		return CompiledBinding{}, ErrNoKeys
	}
	hk, err := input.ParseHotkey(spec.Keys)
	if err != nil {
		return CompiledBinding{}, err
	}
	if spec.Action == nil {
		return CompiledBinding{}, ErrNoAction
	}
	act, err := spec.Action.Compile()
	if err != nil {
		return CompiledBinding{}, err
	}
	swallow := c.Swallow
	if spec.Swallow != nil {
		swallow = *spec.Swallow
	}
	return CompiledBinding{Hotkey: hk, Action: act, Swallow: swallow}, nil
}

// Compile turns an ActionSpec into an action tree and validates it.
func (s *ActionSpec) Compile() (*action.Action, error) {
	act, err := s.compile()
	if err != nil {
		return nil, err
	}
	if err := act.Validate(); err != nil {
		return nil, err
	}
	return act, nil
}

func (s *ActionSpec) compile() (*action.Action, error) {
	if s == nil {
		return nil, ErrNoAction
	}

	switch s.Type {
	case "press", "hold", "release":
		k := key.FromName(s.Key)
		if k == key.KeyNone {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKey, s.Key)
		}
		switch s.Type {
		case "press":
			return action.PressKey(k), nil
		case "hold":
			return action.HoldKey(k), nil
		default:
			return action.ReleaseKey(k), nil
		}

	case "click":
		b := mouse.FromName(s.Button)
		if b == mouse.ButtonNone {
			return nil, fmt.Errorf("%w: %q", ErrUnknownButton, s.Button)
		}
		return action.Click(b), nil

	case "text":
		return action.TypeText(s.Text), nil

	case "delay":
		return action.Delay(time.Duration(s.Ms) * time.Millisecond), nil

	case "random_delay", "random-delay":
		return action.RandomDelay(
			time.Duration(s.MinMs)*time.Millisecond,
			time.Duration(s.MaxMs)*time.Millisecond,
		), nil

	case "sequence", "seq":
		steps, err := compileSteps(s.Steps)
		if err != nil {
			return nil, err
		}
		return action.Sequence(steps...), nil

	case "repeat", "repeat_while_held", "repeat-while-held":
		steps, err := compileSteps(s.Steps)
		if err != nil {
			return nil, err
		}
		return action.RepeatWhileHeld(
			time.Duration(s.IntervalMs)*time.Millisecond, steps...), nil

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownActionType, s.Type)
	}
}

func compileSteps(specs []*ActionSpec) ([]*action.Action, error) {
	steps := make([]*action.Action, 0, len(specs))
	for i, sub := range specs {
		a, err := sub.compile()
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		steps = append(steps, a)
	}
	return steps, nil
}
