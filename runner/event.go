// Package runner implements the dyntest test harness: it filters a flat list
// of test descriptors, executes them in parallel and reports the outcome.
package runner

import "time"

// Delimiter separates the segments of a fully-qualified test name.
const Delimiter = "::"

// Action represents the type of test event.
type Action string

// Action constants for test events.
const (
	ActionRun    Action = "started"
	ActionPass   Action = "ok"
	ActionFail   Action = "failed"
	ActionIgnore Action = "ignored"
)

// IsTerminal returns true if this action ends a test.
func (a Action) IsTerminal() bool {
	return a == ActionPass || a == ActionFail || a == ActionIgnore
}

// Event represents a single test event emitted during execution.
type Event struct {
	Time    time.Time     // When the event occurred
	Action  Action        // What happened
	Name    string        // Fully-qualified test name
	Elapsed time.Duration // Time taken (for terminal events)
	Error   error         // Failure details (for ActionFail)
	Message string        // Ignore reason (for ActionIgnore)
}
