package runner

import (
	"sync"
	"time"
)

// Stats are the counters of the statistics line. Measured is always zero:
// there are no benchmarks.
type Stats struct {
	Passed      int
	Failed      int
	Ignored     int
	Measured    int
	FilteredOut int
}

// Result accumulates test outcomes during a run. It is safe for concurrent use.
type Result struct {
	mu       sync.RWMutex
	start    time.Time
	end      time.Time
	stats    Stats
	outcomes []TestResult
}

// NewResult creates a Result whose clock starts now.
func NewResult() *Result {
	return &Result{start: time.Now()}
}

// Add records a terminal event. Other events are ignored.
func (r *Result) Add(event Event) {
	if !event.Action.IsTerminal() {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.outcomes = append(r.outcomes, TestResult{
		Name:    event.Name,
		Status:  event.Action,
		Elapsed: event.Elapsed,
		Error:   event.Error,
		Message: event.Message,
	})

	switch event.Action {
	case ActionPass:
		r.stats.Passed++
	case ActionFail:
		r.stats.Failed++
	case ActionIgnore:
		r.stats.Ignored++
	case ActionRun:
	}
}

// SetFilteredOut records how many tests were excluded before execution.
func (r *Result) SetFilteredOut(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stats.FilteredOut = n
}

// Finish stops the clock.
func (r *Result) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.end = time.Now()
}

// Elapsed returns the time since NewResult, up to Finish if it was called.
func (r *Result) Elapsed() time.Duration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.end.IsZero() {
		return time.Since(r.start)
	}

	return r.end.Sub(r.start)
}

// Stats returns a snapshot of the counters.
func (r *Result) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.stats
}

// Ok reports whether no test failed.
func (r *Result) Ok() bool {
	return r.Stats().Failed == 0
}

// Outcomes returns every recorded outcome in completion order. Tests with
// duplicate names appear once per run.
func (r *Result) Outcomes() []TestResult {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]TestResult(nil), r.outcomes...)
}

// FailedTests returns the failed outcomes in completion order.
func (r *Result) FailedTests() []TestResult {
	var failed []TestResult

	for _, tr := range r.Outcomes() {
		if tr.Status == ActionFail {
			failed = append(failed, tr)
		}
	}

	return failed
}

// TestResult is the outcome of a single test.
type TestResult struct {
	Name    string
	Status  Action
	Elapsed time.Duration
	Error   error
	Message string
}
