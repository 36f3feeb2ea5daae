// Package action defines the recursive action tree bound to hotkeys and
// the interpreter that executes it against a platform executor.
//
// # Action trees
//
// An Action is a value tree built from primitives (PressKey, Click,
// HoldKey, ReleaseKey, TypeText) and combinators (Sequence, Delay,
// RandomDelay, RepeatWhileHeld). Trees are immutable once registered and
// owned by the binding registry entry that declares them.
//
// # Execution model
//
// The interpreter walks the tree recursively. A Sequence runs its steps
// strictly in order and aborts on the first failure. Delay and RandomDelay
// suspend only the current branch; the event processor keeps consuming
// input. RepeatWhileHeld runs its steps as a sequence, pauses for the
// configured interval, and repeats until the event processor cancels its
// context; cancellation is a normal termination, and any key a HoldKey
// step left pressed is released before the repeat returns.
//
// Each top-level triggered action runs as its own goroutine, so actions
// from different hotkeys (or repeated firings of the same hotkey) execute
// concurrently and independently.
package action
