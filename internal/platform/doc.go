// Package platform provides the OS-facing capture and injection
// backends. Capture backends observe global keyboard and mouse events
// and deliver them as input events; executors synthesize key and mouse
// events back into the OS. Backend selection is by name, with "auto"
// picking the best available backend for the current system.
package platform
