package app

import (
	"fmt"
	"io"

	"github.com/dshills/macrokey/internal/binding"
	"github.com/dshills/macrokey/internal/config"
)

// CheckConfig loads and compiles a configuration without starting the
// daemon, writing a summary of the resulting bindings to out.
func CheckConfig(path string, out io.Writer) error {
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	bindings, err := LoadBindings(cfg, path)
	if err != nil {
		return err
	}

	reg := binding.NewRegistry()
	for _, b := range bindings {
		if err := reg.Bind(b.Hotkey, b.Action, binding.Options{Swallow: b.Swallow}); err != nil {
			return fmt.Errorf("binding %s: %w", b.Hotkey, err)
		}
	}

	fmt.Fprintf(out, "%s: %d bindings\n", path, reg.Len())
	for _, hk := range reg.Hotkeys() {
		act, _ := reg.Action(hk)
		fmt.Fprintf(out, "  %-24s %s\n", hk.String(), act.String())
	}
	for _, w := range reg.Warnings() {
		fmt.Fprintf(out, "warning: %s\n", w.String())
	}
	return nil
}
