package runner

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// IgnoreMode controls how tests marked as ignored are treated.
type IgnoreMode int

// Ignore modes.
const (
	// SkipIgnored reports ignored tests as ignored without running them.
	SkipIgnored IgnoreMode = iota
	// IncludeIgnored runs ignored tests like any other test.
	IncludeIgnored
	// OnlyIgnored runs ignored tests and filters out the rest.
	OnlyIgnored
)

// Runner filters and executes test descriptors.
type Runner struct {
	handler  Handler
	threads  int
	failFast bool
	filters  []string
	exact    bool
	skips    []string
	ignored  IgnoreMode
	logger   *zap.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithHandler sets the event handler.
func WithHandler(h Handler) Option {
	return func(r *Runner) {
		r.handler = h
	}
}

// WithThreads sets the maximum number of tests running at once.
// Values below one fall back to the number of CPUs.
func WithThreads(n int) Option {
	return func(r *Runner) {
		r.threads = n
	}
}

// WithFailFast stops scheduling tests after the first failure.
func WithFailFast(enabled bool) Option {
	return func(r *Runner) {
		r.failFast = enabled
	}
}

// WithFilters selects tests whose name contains any of the filters.
// No filters selects every test.
func WithFilters(filters ...string) Option {
	return func(r *Runner) {
		r.filters = append(r.filters, filters...)
	}
}

// WithExact makes filters match whole names instead of substrings.
func WithExact(enabled bool) Option {
	return func(r *Runner) {
		r.exact = enabled
	}
}

// WithSkip filters out tests whose name contains any of the given strings.
func WithSkip(skips ...string) Option {
	return func(r *Runner) {
		r.skips = append(r.skips, skips...)
	}
}

// WithIgnoreMode sets how ignored tests are treated.
func WithIgnoreMode(mode IgnoreMode) Option {
	return func(r *Runner) {
		r.ignored = mode
	}
}

// WithLogger sets the logger used for scheduling diagnostics.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// New creates a Runner with the given options.
func New(opts ...Option) *Runner {
	r := &Runner{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(r)
	}

	if r.threads < 1 {
		r.threads = runtime.NumCPU()
	}

	return r
}

// Select returns the tests that pass the filters, in registration order,
// and the number of tests filtered out.
func (r *Runner) Select(tests []Test) ([]Test, int) {
	selected := make([]Test, 0, len(tests))

	for _, t := range tests {
		if r.matches(t) {
			selected = append(selected, t)
		}
	}

	return selected, len(tests) - len(selected)
}

func (r *Runner) matches(t Test) bool {
	if r.ignored == OnlyIgnored && !t.Ignore {
		return false
	}

	for _, skip := range r.skips {
		if strings.Contains(t.Name, skip) {
			return false
		}
	}

	if len(r.filters) == 0 {
		return true
	}

	for _, f := range r.filters {
		if (r.exact && t.Name == f) || (!r.exact && strings.Contains(t.Name, f)) {
			return true
		}
	}

	return false
}

// Run executes the selected tests and returns the results. Test failures are
// reported through the result, not the error; the error is reserved for
// handler failures and context cancellation.
func (r *Runner) Run(ctx context.Context, tests []Test) (*Result, error) {
	selected, filtered := r.Select(tests)

	result := NewResult()
	result.SetFilteredOut(filtered)

	handler := chain{record}
	if r.handler != nil {
		handler = append(handler, r.handler)
	}

	if r.failFast {
		handler = append(handler, NewStopOnFailHandler(1))
	}

	if err := handler.Plan(len(selected)); err != nil {
		return result, err
	}

	r.logger.Debug("running tests",
		zap.Int("selected", len(selected)),
		zap.Int("filtered_out", filtered),
		zap.Int("threads", r.threads),
	)

	// Handlers are not required to be safe for concurrent use.
	var mu sync.Mutex

	emit := func(ctx context.Context, event Event) error {
		mu.Lock()
		defer mu.Unlock()

		return handler.Event(ctx, event, result)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.threads)

	for _, t := range selected {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if t.Ignore && r.ignored == SkipIgnored {
				return emit(gctx, Event{
					Time:    time.Now(),
					Action:  ActionIgnore,
					Name:    t.Name,
					Message: t.IgnoreMessage,
				})
			}

			return r.runTest(gctx, t, emit)
		})
	}

	err := g.Wait()

	result.Finish()

	if errors.Is(err, ErrMaxFailures) {
		r.logger.Debug("stopped after first failure")

		return result, nil
	}

	if err != nil {
		return result, err
	}

	return result, ctx.Err()
}

func (r *Runner) runTest(ctx context.Context, t Test, emit func(context.Context, Event) error) error {
	start := time.Now()

	err := emit(ctx, Event{Time: start, Action: ActionRun, Name: t.Name})
	if err != nil {
		return err
	}

	failure := Execute(t)

	event := Event{
		Time:    time.Now(),
		Action:  ActionPass,
		Name:    t.Name,
		Elapsed: time.Since(start),
	}

	if failure != nil {
		event.Action = ActionFail
		event.Error = failure

		r.logger.Debug("test failed", zap.String("test", t.Name), zap.Error(failure))
	}

	return emit(ctx, event)
}
