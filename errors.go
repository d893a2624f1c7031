package dyntest

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	// ErrConfigNotFound is returned when no .dyntest.yaml is found.
	ErrConfigNotFound = errors.New("dyntest: no .dyntest.yaml found")

	// ErrBadPattern is wrapped by PatternError.
	ErrBadPattern = errors.New("dyntest: invalid glob pattern")

	// ErrWalk is wrapped by WalkError.
	ErrWalk = errors.New("dyntest: discovery failed")
)

// PatternError reports a malformed glob pattern. Glob discovery panics with
// a *PatternError, aborting registration.
type PatternError struct {
	Pattern string
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("%v: %q", ErrBadPattern, e.Pattern)
}

func (e *PatternError) Unwrap() error {
	return ErrBadPattern
}

// WalkError reports an entry that could not be read during discovery. Glob
// discovery panics with a *WalkError, aborting registration.
type WalkError struct {
	Base string
	Err  error
}

func (e *WalkError) Error() string {
	return fmt.Sprintf("%v in %s: %v", ErrWalk, e.Base, e.Err)
}

func (e *WalkError) Unwrap() []error {
	return []error{ErrWalk, e.Err}
}

// isRegistrationError reports whether err is one of the fatal errors raised
// while registering tests.
func isRegistrationError(err error) bool {
	return errors.Is(err, ErrBadPattern) || errors.Is(err, ErrWalk)
}
