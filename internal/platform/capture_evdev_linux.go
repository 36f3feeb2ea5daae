//go:build linux

package platform

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dshills/macrokey/internal/action"
	"github.com/dshills/macrokey/internal/input"
	"github.com/dshills/macrokey/internal/input/key"
	"github.com/dshills/macrokey/internal/input/mouse"
)

// evdevCapture reads raw key events from Linux input devices. It needs
// read access to /dev/input (root or the input group) and sees input
// regardless of display server, including the console and Wayland.
type evdevCapture struct {
	log    action.Logger
	events chan input.Event

	mu      sync.Mutex
	devices []*os.File
	closed  bool
	wg      sync.WaitGroup
}

func newEvdevCapture(log action.Logger) (Capture, error) {
	paths, err := findInputDevices()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}

	c := &evdevCapture{
		log:    log,
		events: make(chan input.Event, 128),
	}
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			log.Warn("cannot open input device", map[string]any{
				"device": path,
				"error":  err.Error(),
			})
			continue
		}
		c.devices = append(c.devices, f)
		c.wg.Add(1)
		go c.readDevice(f)
	}
	if len(c.devices) == 0 {
		return nil, fmt.Errorf("%w: no readable input devices", ErrBackendUnavailable)
	}

	go func() {
		c.wg.Wait()
		close(c.events)
	}()
	return c, nil
}

func (c *evdevCapture) Name() string { return "evdev" }

func (c *evdevCapture) Events() <-chan input.Event { return c.events }

func (c *evdevCapture) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	for _, f := range c.devices {
		f.Close()
	}
	return nil
}

// readDevice reads 24-byte input_event records until the device closes.
func (c *evdevCapture) readDevice(f *os.File) {
	defer c.wg.Done()

	buf := make([]byte, 24)
	for {
		n, err := f.Read(buf)
		if err != nil {
			return
		}
		if n != len(buf) {
			continue
		}

		typ := binary.LittleEndian.Uint16(buf[16:18])
		code := binary.LittleEndian.Uint16(buf[18:20])
		value := int32(binary.LittleEndian.Uint32(buf[20:24]))
		if typ != evKey {
			continue
		}

		ev, ok := c.translate(code, value)
		if !ok {
			continue
		}
		select {
		case c.events <- ev:
		default:
			c.log.Warn("event buffer full, dropping event", map[string]any{
				"event": ev.Type,
			})
		}
	}
}

func (c *evdevCapture) translate(code uint16, value int32) (input.Event, bool) {
	if b := evdevButton(code); b != mouse.ButtonNone {
		switch value {
		case keyPressed:
			return input.MousePress(b), true
		case keyReleased:
			return input.MouseRelease(b), true
		}
		return input.Event{}, false
	}

	k := evdevKey(code)
	if k == key.KeyNone {
		return input.Event{}, false
	}
	switch value {
	case keyPressed, keyRepeat:
		// Auto-repeat is delivered as a press.
		return input.KeyPress(k), true
	case keyReleased:
		return input.KeyRelease(k), true
	}
	return input.Event{}, false
}

// findInputDevices locates keyboard and mouse event devices, first via
// /dev/input/by-id, then by scanning /proc/bus/input/devices.
func findInputDevices() ([]string, error) {
	var paths []string
	seen := make(map[string]bool)
	add := func(p string) {
		resolved, err := filepath.EvalSymlinks(p)
		if err != nil {
			resolved = p
		}
		if !seen[resolved] {
			seen[resolved] = true
			paths = append(paths, resolved)
		}
	}

	entries, err := os.ReadDir("/dev/input/by-id")
	if err == nil {
		for _, entry := range entries {
			name := entry.Name()
			if !strings.HasSuffix(name, "-event-kbd") && !strings.HasSuffix(name, "-event-mouse") {
				continue
			}
			add(filepath.Join("/dev/input/by-id", name))
		}
	}
	if len(paths) > 0 {
		return paths, nil
	}

	f, err := os.Open("/proc/bus/input/devices")
	if err != nil {
		return nil, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	wanted := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "N: Name=") {
			name := strings.ToLower(line)
			wanted = strings.Contains(name, "keyboard") ||
				strings.Contains(name, "kbd") ||
				strings.Contains(name, "mouse")
		}
		if wanted && strings.HasPrefix(line, "H: Handlers=") {
			for _, part := range strings.Fields(line) {
				if strings.HasPrefix(part, "event") {
					add("/dev/input/" + part)
				}
			}
		}
		if line == "" {
			wanted = false
		}
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no keyboard or mouse devices found")
	}
	return paths, nil
}
