package engine

import (
	"fmt"
	"sync/atomic"
)

// Metrics collects event-loop statistics. Counters are atomic because the
// event loop and action goroutines update them concurrently.
type Metrics struct {
	// Events is the number of input events processed.
	Events atomic.Uint64

	// ActionsStarted is the number of non-repeat actions submitted.
	ActionsStarted atomic.Uint64

	// ActionFailures is the number of action executions that failed.
	ActionFailures atomic.Uint64

	// RepeatsStarted is the number of repeat loops spawned.
	RepeatsStarted atomic.Uint64

	// RepeatsCancelled is the number of repeat loops cancelled.
	RepeatsCancelled atomic.Uint64
}

// NewMetrics creates a zeroed metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// String returns a one-line summary for shutdown logging.
func (m *Metrics) String() string {
	return fmt.Sprintf("events=%d actions=%d failures=%d repeats=%d/%d",
		m.Events.Load(), m.ActionsStarted.Load(), m.ActionFailures.Load(),
		m.RepeatsStarted.Load(), m.RepeatsCancelled.Load())
}
