// Package main is the entry point for the macrokey daemon.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dshills/macrokey/internal/app"
	"github.com/dshills/macrokey/internal/engine"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	opts, check, showVersion := parseFlags()

	if showVersion {
		fmt.Printf("macrokey %s (commit %s, built %s)\n", version, commit, date)
		return 0
	}

	if opts.ConfigPath == "" {
		opts.ConfigPath = defaultConfigPath()
	}

	if check {
		if err := app.CheckConfig(opts.ConfigPath, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	application, err := app.New(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to initialize: %v\n", err)
		return 1
	}

	// Handle signals for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		cancel()
	}()

	if err := application.Run(ctx); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, engine.ErrStreamClosed) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() (app.Options, bool, bool) {
	var opts app.Options
	var check bool
	var showVersion bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	flag.StringVar(&opts.Backend, "backend", "", "Capture backend (auto, gohook, evdev, reserve)")
	flag.BoolVar(&opts.DryRun, "dry-run", false, "Record synthesized events instead of injecting them")
	flag.BoolVar(&check, "check", false, "Validate the configuration and exit")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Macrokey - global hotkey and macro daemon\n\n")
		fmt.Fprintf(os.Stderr, "Usage: macrokey [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  macrokey                          Run with the default config\n")
		fmt.Fprintf(os.Stderr, "  macrokey -c macros.toml -check    Validate a config file\n")
		fmt.Fprintf(os.Stderr, "  macrokey -backend evdev           Force the evdev capture backend\n")
	}
	flag.Parse()

	return opts, check, showVersion
}

func defaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "macrokey", "macrokey.toml")
	}
	return "macrokey.toml"
}
