package app

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/macrokey/internal/config"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadBindingsWithScripts(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "bindings.lua", `bind("ctrl+b", press("enter"))`)
	path := writeConfig(t, dir, "macrokey.toml", `
scripts = ["bindings.lua"]

[[binding]]
keys = "ctrl+a"
action = { type = "press", key = "home" }
`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	bindings, err := LoadBindings(cfg, path)
	if err != nil {
		t.Fatalf("LoadBindings: %v", err)
	}
	if len(bindings) != 2 {
		t.Fatalf("got %d bindings, want 2 (toml + lua)", len(bindings))
	}
}

func TestLoadBindingsScriptError(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "bad.lua", `bind("ctrl+a",`)
	path := writeConfig(t, dir, "macrokey.toml", `scripts = ["bad.lua"]`)

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := LoadBindings(cfg, path); err == nil {
		t.Fatal("expected script error")
	}
}

func TestCheckConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "macrokey.toml", `
[[binding]]
keys = "ctrl+shift+p"
action = { type = "text", text = "hello" }
`)

	var out bytes.Buffer
	if err := CheckConfig(path, &out); err != nil {
		t.Fatalf("CheckConfig: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "1 bindings") {
		t.Errorf("missing count: %q", got)
	}
	if !strings.Contains(got, "ctrl+shift+p") {
		t.Errorf("missing hotkey: %q", got)
	}
}

func TestCheckConfigReportsAmbiguity(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "macrokey.toml", `
[[binding]]
keys = "ctrl+a"
action = { type = "press", key = "home" }

[[binding]]
keys = "shift+a"
action = { type = "press", key = "end" }
`)

	var out bytes.Buffer
	if err := CheckConfig(path, &out); err != nil {
		t.Fatalf("CheckConfig: %v", err)
	}
	if !strings.Contains(out.String(), "warning:") {
		t.Errorf("ambiguity warning not reported: %q", out.String())
	}
}

func TestCheckConfigBadBinding(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "macrokey.toml", `
[[binding]]
keys = "hyper+a"
action = { type = "press", key = "a" }
`)

	if err := CheckConfig(path, io.Discard); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestNewDryRun(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, "macrokey.toml", `
log_level = "error"

[[binding]]
keys = "f5"
action = { type = "press", key = "enter" }
`)

	a, err := New(Options{ConfigPath: path, DryRun: true, LogOutput: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if a.Recorder() == nil {
		t.Fatal("dry run should expose a recorder")
	}
	if a.registry.Len() != 1 {
		t.Errorf("registry has %d bindings, want 1", a.registry.Len())
	}
}
