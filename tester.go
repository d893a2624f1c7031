package dyntest

import (
	"path/filepath"

	"go.uber.org/zap"

	"github.com/rlch/dyntest/runner"
)

// Location is the source position of the registration entry point.
type Location = runner.Location

// DynTester collects tests during registration. It is handed to the
// registration function by Main and must not be used after that function
// returns.
type DynTester struct {
	root   string
	loc    Location
	tests  []*DynTest
	group  []byte
	logger *zap.Logger
}

// NewTester returns a tester rooted at root, for tools that inspect
// discovery without running tests. A nil logger disables logging.
func NewTester(root string, logger *zap.Logger) *DynTester {
	return newTester(root, Location{}, logger)
}

func newTester(root string, loc Location, logger *zap.Logger) *DynTester {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &DynTester{root: root, loc: loc, logger: logger}
}

// Test registers a test named by the current group prefix followed by name.
// body is not called during registration; a non-nil error or a panic fails
// the test. The returned test can be configured further.
func (t *DynTester) Test(name Name, body func() error) *DynTest {
	test := &DynTest{
		name: string(t.group) + string(name),
		body: body,
	}

	t.tests = append(t.tests, test)
	t.logger.Debug("registered test", zap.String("test", test.name))

	return test
}

// TestFunc registers a test whose body fails only by panicking.
func (t *DynTester) TestFunc(name Name, body func()) *DynTest {
	return t.Test(name, func() error {
		body()

		return nil
	})
}

// Group registers the tests added by f under name. Groups nest; the prefix
// is restored when f returns, including when it panics.
func (t *DynTester) Group(name Name, f func(*DynTester)) {
	n := len(t.group)

	defer func() {
		t.group = t.group[:n]
	}()

	t.group = append(t.group, name...)
	t.group = append(t.group, Delimiter...)

	t.logger.Debug("enter group", zap.ByteString("prefix", t.group))

	f(t)
}

// NamedFunc is a registration function registered as a group of its name.
type NamedFunc struct {
	Name Name
	Func func(*DynTester)
}

// Groups registers each function as a group named after it.
func (t *DynTester) Groups(fns ...NamedFunc) {
	for _, fn := range fns {
		t.Group(fn.Name, fn.Func)
	}
}

// Resolve joins rel onto the root directory. An absolute rel replaces the
// root and is returned unchanged. It performs no I/O.
func (t *DynTester) Resolve(rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}

	return filepath.Join(t.root, rel)
}

// Root returns the directory relative paths are resolved against.
func (t *DynTester) Root() string {
	return t.root
}

// Location returns the source position of the registration entry point.
func (t *DynTester) Location() Location {
	return t.loc
}

// Len returns the number of tests registered so far.
func (t *DynTester) Len() int {
	return len(t.tests)
}

// drain hands over the registered tests; the tester keeps none.
func (t *DynTester) drain() []*DynTest {
	tests := t.tests
	t.tests = nil

	return tests
}

// DynTest is a registered test that can be configured further.
type DynTest struct {
	name        string
	body        func() error
	ignore      Ignore
	shouldPanic ShouldPanic
}

// Ignore sets the ignore directive. The last call wins.
//
//	t.Test("slow", body).Ignore(dyntest.Ignored)
//	t.Test("flaky", body).Ignore(dyntest.IgnoreBecause("see #12"))
func (d *DynTest) Ignore(ignore Ignore) *DynTest {
	d.ignore = ignore

	return d
}

// ShouldPanic sets the should-panic directive. The last call wins.
//
//	t.Test("boom", body).ShouldPanic(dyntest.MustPanic)
//	t.Test("index", body).ShouldPanic(dyntest.PanicWith("out of range"))
func (d *DynTest) ShouldPanic(shouldPanic ShouldPanic) *DynTest {
	d.shouldPanic = shouldPanic

	return d
}

// Name returns the fully-qualified name.
func (d *DynTest) Name() string {
	return d.name
}

// Directives returns the current ignore and should-panic directives.
func (d *DynTest) Directives() (Ignore, ShouldPanic) {
	return d.ignore, d.shouldPanic
}

func (d *DynTest) descriptor(loc Location) runner.Test {
	return runner.Test{
		Name:          d.name,
		Ignore:        d.ignore.IsIgnored(),
		IgnoreMessage: d.ignore.Message(),
		ShouldPanic:   d.shouldPanic.expectation(),
		Source:        loc,
		Fn:            d.body,
	}
}
