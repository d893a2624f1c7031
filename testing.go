package dyntest

import (
	"testing"

	"github.com/rlch/dyntest/runner"
)

// RunT registers tests with f and runs each as a subtest of t, so dynamic
// tests can live in ordinary _test.go files and use `go test -run`.
// Ignored tests are skipped and should-panic expectations are enforced.
// Relative paths resolve against the module root of the caller's file.
func RunT(t *testing.T, f func(*DynTester)) {
	t.Helper()

	loc := caller()
	tester := newTester(FindRoot(loc.File), loc, nil)

	f(tester)

	for _, test := range descriptors(tester, loc) {
		t.Run(test.Name, func(t *testing.T) {
			if test.Ignore {
				if test.IgnoreMessage != "" {
					t.Skip(test.IgnoreMessage)
				}

				t.SkipNow()
			}

			if err := runner.Execute(test); err != nil {
				t.Fatal(err)
			}
		})
	}
}
