// Package binding maps hotkeys to action trees and resolves incoming
// triggers against them.
//
// A hotkey matches when its trigger equals the event's trigger and its
// modifier set is a subset of the currently-held modifiers. Among multiple
// matches the largest modifier set (the most specific hotkey) wins; equal
// specificity is resolved deterministically in favor of the most recently
// bound hotkey and surfaced as a configuration warning at bind time.
package binding
