package app

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"debug", LogLevelDebug},
		{"DEBUG", LogLevelDebug},
		{"info", LogLevelInfo},
		{"warn", LogLevelWarn},
		{"warning", LogLevelWarn},
		{"error", LogLevelError},
		{"bogus", LogLevelInfo},
		{"", LogLevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.in); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerConfig{Level: LogLevelWarn, Output: &buf})

	log.Debug("hidden", nil)
	log.Info("hidden", nil)
	log.Warn("shown warn", nil)
	log.Error("shown error", nil)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("suppressed levels leaked: %q", out)
	}
	if !strings.Contains(out, "shown warn") || !strings.Contains(out, "shown error") {
		t.Errorf("expected warn and error output, got %q", out)
	}
}

func TestLoggerFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf, Prefix: "test"})

	log.Info("message", map[string]any{"b": 2, "a": 1})

	out := buf.String()
	if !strings.Contains(out, "[INFO] test: message") {
		t.Errorf("unexpected format: %q", out)
	}
	// Fields print in sorted key order.
	if !strings.Contains(out, "{a=1, b=2}") {
		t.Errorf("fields missing or unsorted: %q", out)
	}
}

func TestLoggerWithComponent(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerConfig{Level: LogLevelDebug, Output: &buf})

	sub := log.WithComponent("engine")
	sub.Info("started", nil)
	log.Info("plain", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines", len(lines))
	}
	if !strings.Contains(lines[0], "component=engine") {
		t.Errorf("component field missing: %q", lines[0])
	}
	if strings.Contains(lines[1], "component") {
		t.Errorf("parent logger gained fields: %q", lines[1])
	}
}

func TestLoggerSetLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LoggerConfig{Level: LogLevelError, Output: &buf})

	log.Info("before", nil)
	log.SetLevel(LogLevelDebug)
	log.Info("after", nil)

	out := buf.String()
	if strings.Contains(out, "before") {
		t.Errorf("message logged below level: %q", out)
	}
	if !strings.Contains(out, "after") {
		t.Errorf("message missing after SetLevel: %q", out)
	}
}
