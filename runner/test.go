package runner

import (
	"fmt"
	"strings"
)

// PanicKind classifies a should-panic expectation.
type PanicKind int

// Panic expectation kinds.
const (
	PanicNo PanicKind = iota
	PanicYes
	PanicYesWithMessage
)

// PanicExpectation describes whether a test must panic and, optionally,
// a substring the panic message must contain.
type PanicExpectation struct {
	Kind    PanicKind
	Message string
}

// Location is a source position.
type Location struct {
	File   string
	Line   int
	Column int
}

func (l Location) String() string {
	if l.File == "" {
		return "<unknown>"
	}

	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Test is the descriptor of a single runnable test.
type Test struct {
	Name          string
	Ignore        bool
	IgnoreMessage string
	ShouldPanic   PanicExpectation
	Source        Location

	// Fn is called at most once, possibly on another goroutine.
	Fn func() error
}

// Execute runs the test body and checks the outcome against the test's
// should-panic expectation. A nil return means the test passed.
func Execute(t Test) error {
	panicked, value, err := invoke(t.Fn)

	switch t.ShouldPanic.Kind {
	case PanicYes:
		if !panicked {
			return ErrNoPanic
		}

		return nil
	case PanicYesWithMessage:
		if !panicked {
			return ErrNoPanic
		}

		msg := panicMessage(value)
		if !strings.Contains(msg, t.ShouldPanic.Message) {
			return fmt.Errorf("%w\n      panic message: %q\n expected substring: %q",
				ErrPanicMismatch, msg, t.ShouldPanic.Message)
		}

		return nil
	case PanicNo:
	}

	if panicked {
		return fmt.Errorf("%w: %s", ErrPanicked, panicMessage(value))
	}

	return err
}

func invoke(fn func() error) (panicked bool, value any, err error) {
	// A nil panic value still counts as a panic.
	panicked = true

	defer func() {
		if panicked {
			value = recover()
		}
	}()

	err = fn()
	panicked = false

	return panicked, value, err
}

func panicMessage(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case error:
		return v.Error()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
