package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dshills/macrokey/internal/action"
	"github.com/dshills/macrokey/internal/binding"
	"github.com/dshills/macrokey/internal/config"
	"github.com/dshills/macrokey/internal/engine"
	"github.com/dshills/macrokey/internal/input"
	"github.com/dshills/macrokey/internal/platform"
)

// Options configures the application.
type Options struct {
	// ConfigPath is the configuration file to load and watch.
	ConfigPath string

	// LogLevel overrides the configured log level when non-empty.
	LogLevel string

	// Backend overrides the configured capture backend when non-empty.
	Backend string

	// DryRun records synthesized events instead of injecting them.
	DryRun bool

	// LogOutput overrides the log destination. Defaults to stderr.
	LogOutput io.Writer
}

// Application wires configuration, bindings, the event processor and
// the platform backends into a runnable daemon.
type Application struct {
	opts     Options
	log      *Logger
	cfg      *config.Config
	registry *binding.Registry
	proc     *engine.Processor
	exec     action.Executor
	recorder *action.Recorder
	capture  platform.Capture
	watcher  *config.Watcher
}

// New loads the configuration and assembles the daemon. The capture
// backend is not opened until Run.
func New(opts Options) (*Application, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if opts.LogLevel != "" {
		cfg.LogLevel = opts.LogLevel
	}
	if opts.Backend != "" {
		cfg.Backend = opts.Backend
	}

	logCfg := DefaultLoggerConfig()
	logCfg.Level = ParseLogLevel(cfg.LogLevel)
	if opts.LogOutput != nil {
		logCfg.Output = opts.LogOutput
	}
	log := NewLogger(logCfg)

	a := &Application{
		opts:     opts,
		log:      log,
		cfg:      cfg,
		registry: binding.NewRegistry(),
	}

	bindings, err := LoadBindings(cfg, opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	for _, b := range bindings {
		if err := a.registry.Bind(b.Hotkey, b.Action, binding.Options{Swallow: b.Swallow}); err != nil {
			return nil, fmt.Errorf("binding %s: %w", b.Hotkey, err)
		}
	}
	a.logWarnings()
	log.Info("bindings loaded", map[string]any{"count": a.registry.Len()})

	if opts.DryRun {
		a.recorder = &action.Recorder{}
		a.exec = a.recorder
		log.Info("dry run, events will be recorded but not injected", nil)
	} else {
		exec, err := platform.NewExecutor("auto", log.WithComponent("executor"))
		if err != nil {
			return nil, err
		}
		a.exec = exec
	}

	interp := action.NewInterpreter(a.exec, log.WithComponent("interpreter"))
	a.proc = engine.NewProcessor(a.registry, interp, log.WithComponent("engine"))
	return a, nil
}

// LoadBindings compiles the declarative bindings and runs the Lua
// binding scripts. Script paths are resolved relative to the config
// file's directory.
func LoadBindings(cfg *config.Config, configPath string) ([]config.CompiledBinding, error) {
	bindings, err := cfg.CompileBindings()
	if err != nil {
		return nil, err
	}

	if len(cfg.Scripts) > 0 {
		eng := config.NewScriptEngine(cfg.Swallow)
		base := filepath.Dir(configPath)
		for _, script := range cfg.Scripts {
			path := script
			if !filepath.IsAbs(path) {
				path = filepath.Join(base, script)
			}
			if err := eng.RunFile(path); err != nil {
				return nil, err
			}
		}
		bindings = append(bindings, eng.Bindings()...)
	}
	return bindings, nil
}

// Run opens the capture backend and processes events until the context
// is cancelled or the capture stream closes.
func (a *Application) Run(ctx context.Context) error {
	capture, err := platform.OpenCapture(platform.Options{
		Backend: a.cfg.Backend,
		Hotkeys: a.registry.Hotkeys(),
		Log:     a.log.WithComponent("capture"),
	})
	if err != nil {
		return err
	}
	a.capture = capture
	a.log.Info("capture backend open", map[string]any{"backend": capture.Name()})

	if a.opts.ConfigPath != "" {
		watcher, err := config.NewWatcher(a.opts.ConfigPath, a.reload)
		if err != nil {
			a.log.Warn("config watcher unavailable, live reload disabled", map[string]any{
				"error": err.Error(),
			})
		} else {
			a.watcher = watcher
		}
	}
	defer a.shutdown()

	return a.proc.Run(ctx, capture.Events())
}

// Metrics exposes the engine counters.
func (a *Application) Metrics() *engine.Metrics {
	return a.proc.Metrics()
}

// Recorder returns the dry-run recorder, or nil outside dry-run mode.
func (a *Application) Recorder() *action.Recorder {
	return a.recorder
}

// reload recompiles the configuration and swaps the binding table.
// Errors keep the previous bindings in place.
func (a *Application) reload(path string) {
	cfg, err := config.Load(path)
	if err != nil {
		a.log.Error("config reload failed, keeping previous bindings", map[string]any{
			"error": err.Error(),
		})
		return
	}
	if a.opts.LogLevel != "" {
		cfg.LogLevel = a.opts.LogLevel
	}

	bindings, err := LoadBindings(cfg, path)
	if err != nil {
		a.log.Error("config reload failed, keeping previous bindings", map[string]any{
			"error": err.Error(),
		})
		return
	}

	a.registry.Rebuild(func(add func(b input.Hotkey, act *action.Action, opts binding.Options)) {
		for _, b := range bindings {
			add(b.Hotkey, b.Action, binding.Options{Swallow: b.Swallow})
		}
	})
	a.cfg = cfg
	a.log.SetLevel(ParseLogLevel(cfg.LogLevel))
	a.logWarnings()
	a.log.Info("configuration reloaded", map[string]any{"bindings": a.registry.Len()})
}

func (a *Application) logWarnings() {
	for _, w := range a.registry.Warnings() {
		a.log.Warn("ambiguous bindings, most recent wins on ties", map[string]any{
			"first":  w.First.String(),
			"second": w.Second.String(),
		})
	}
}

func (a *Application) shutdown() {
	if a.watcher != nil {
		a.watcher.Close()
	}
	if a.capture != nil {
		a.capture.Close()
	}
	a.proc.Shutdown()
	if c, ok := a.exec.(io.Closer); ok {
		if err := c.Close(); err != nil {
			a.log.Warn("closing executor", map[string]any{"error": err.Error()})
		}
	}
	a.log.Info("shutdown complete", map[string]any{"metrics": a.proc.Metrics().String()})
}
