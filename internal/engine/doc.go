// Package engine implements the event processor: the single ordered
// consumer of the input capture stream.
//
// For every event the processor captures the active modifier set, applies
// the event to the held-state tracker, and on a press resolves the trigger
// against the binding registry. Matched actions are handed to the action
// interpreter on their own goroutines so long-running sequences never
// block event intake.
//
// RepeatWhileHeld actions get an ActiveRepeat record keyed by hotkey: a
// press while a repeat is already in flight (OS auto-repeat) is ignored,
// and releasing the triggering key or button cancels the loop. The
// processor is the only component that may cancel an active repeat; all
// repeats are cancelled on shutdown.
//
// Nothing an action does can terminate the event loop; only cancellation
// of the run context or termination of the capture stream ends it.
package engine
