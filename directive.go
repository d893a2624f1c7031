package dyntest

import "github.com/rlch/dyntest/runner"

// Ignore is the value of a test's ignore directive: not ignored, ignored, or
// ignored with a reason.
type Ignore struct {
	ignored bool
	reason  string
}

// Ignore directives.
var (
	NoIgnore = Ignore{}
	Ignored  = Ignore{ignored: true}
)

// IgnoreIf returns Ignored when b is true and NoIgnore otherwise.
func IgnoreIf(b bool) Ignore {
	if b {
		return Ignored
	}

	return NoIgnore
}

// IgnoreBecause ignores a test, reporting reason alongside it.
func IgnoreBecause(reason string) Ignore {
	return Ignore{ignored: true, reason: reason}
}

// IsIgnored reports whether the test is skipped by default.
func (i Ignore) IsIgnored() bool {
	return i.ignored
}

// Message returns the reason, if any.
func (i Ignore) Message() string {
	return i.reason
}

// ShouldPanic is the value of a test's should-panic directive.
type ShouldPanic struct {
	kind    runner.PanicKind
	message string
}

// Should-panic directives.
var (
	NoPanic   = ShouldPanic{kind: runner.PanicNo}
	MustPanic = ShouldPanic{kind: runner.PanicYes}
)

// PanicIf returns MustPanic when b is true and NoPanic otherwise.
func PanicIf(b bool) ShouldPanic {
	if b {
		return MustPanic
	}

	return NoPanic
}

// PanicWith requires the test to panic with a message containing substr.
func PanicWith(substr string) ShouldPanic {
	return ShouldPanic{kind: runner.PanicYesWithMessage, message: substr}
}

// Expected reports whether the test must panic.
func (p ShouldPanic) Expected() bool {
	return p.kind != runner.PanicNo
}

// Message returns the required panic substring, if any.
func (p ShouldPanic) Message() string {
	return p.message
}

func (p ShouldPanic) expectation() runner.PanicExpectation {
	return runner.PanicExpectation{Kind: p.kind, Message: p.message}
}
