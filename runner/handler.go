package runner

import "context"

// Handler observes events as tests are scheduled and finish. The runner
// serializes calls, so implementations need no locking of their own.
// A non-nil error stops the run.
type Handler interface {
	Event(ctx context.Context, event Event, result *Result) error
}

// Planner is implemented by handlers that want the number of selected tests
// before the first event.
type Planner interface {
	Plan(total int) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, event Event, result *Result) error

// Event calls f.
func (f HandlerFunc) Event(ctx context.Context, event Event, result *Result) error {
	return f(ctx, event, result)
}

// chain dispatches to each handler in order, stopping at the first error.
type chain []Handler

func (c chain) Event(ctx context.Context, event Event, result *Result) error {
	for _, h := range c {
		if err := h.Event(ctx, event, result); err != nil {
			return err
		}
	}

	return nil
}

func (c chain) Plan(total int) error {
	for _, h := range c {
		p, ok := h.(Planner)
		if !ok {
			continue
		}

		if err := p.Plan(total); err != nil {
			return err
		}
	}

	return nil
}

// record feeds terminal events into the result.
var record = HandlerFunc(func(_ context.Context, event Event, result *Result) error {
	result.Add(event)

	return nil
})

// StopOnFailHandler returns ErrMaxFailures once it has seen maxFails failed
// tests. Zero or less never stops.
type StopOnFailHandler struct {
	maxFails int
	failed   int
}

// NewStopOnFailHandler creates a handler that stops after n failures.
func NewStopOnFailHandler(maxFails int) *StopOnFailHandler {
	return &StopOnFailHandler{maxFails: maxFails}
}

// Event counts failures.
func (h *StopOnFailHandler) Event(_ context.Context, event Event, _ *Result) error {
	if event.Action != ActionFail || h.maxFails <= 0 {
		return nil
	}

	h.failed++
	if h.failed >= h.maxFails {
		return ErrMaxFailures
	}

	return nil
}
