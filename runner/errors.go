package runner

import "errors"

// Sentinel errors for the runner package.
var (
	// ErrMaxFailures is returned when the max failure limit is reached.
	ErrMaxFailures = errors.New("runner: max failures reached")

	// ErrUnknownFormat is returned for an unsupported --format value.
	ErrUnknownFormat = errors.New("runner: unknown format")

	// ErrUnknownColor is returned for an unsupported --color value.
	ErrUnknownColor = errors.New("runner: unknown color mode")

	// ErrPanicked wraps the message of an unexpected panic.
	ErrPanicked = errors.New("test panicked")

	// ErrNoPanic is reported when a should-panic test returns normally.
	ErrNoPanic = errors.New("test did not panic as expected")

	// ErrPanicMismatch is reported when the panic message lacks the expected substring.
	ErrPanicMismatch = errors.New("panic did not contain expected string")

	// Test errors for use in unit tests.
	errTestFail = errors.New("test: fail")
)
