// Package input defines the shared input vocabulary: raw events from the
// capture layer, triggers, and hotkeys.
//
// A Trigger is the key or mouse button whose transition a hotkey cares
// about. A Hotkey pairs a trigger with an unordered modifier set. Both are
// plain comparable values so they can be used directly as map keys.
//
// Subpackages define the closed enumerations: key for keyboard keys and
// modifier sets, mouse for buttons, and state for the live held-input
// tracker.
package input
