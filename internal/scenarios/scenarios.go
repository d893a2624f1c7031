// Package scenarios holds the registration functions behind the example
// programs, so tests can run them in-process.
package scenarios

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rlch/dyntest"
)

// Basic registers one test per table entry.
func Basic(t *dyntest.DynTester) {
	for _, c := range []struct {
		s   string
		len int
	}{{"a", 1}, {"pq", 2}, {"xyz", 3}} {
		t.Test(dyntest.Name(c.s), func() error {
			if len(c.s) != c.len {
				return fmt.Errorf("len(%q) = %d, want %d", c.s, len(c.s), c.len)
			}

			return nil
		})
	}
}

// Config exercises the ignore and should-panic directives.
var Config = []dyntest.NamedFunc{
	{Name: "test_should_panic", Func: shouldPanic},
	{Name: "test_ignore", Func: ignore},
}

func shouldPanic(t *dyntest.DynTester) {
	t.TestFunc("panic", func() { panic("explicit panic") }).ShouldPanic(dyntest.MustPanic)
	t.TestFunc("aaa", func() { panic("aaa") }).ShouldPanic(dyntest.PanicWith("aaa"))
}

func ignore(t *dyntest.DynTester) {
	t.TestFunc("ignore", func() {}).Ignore(dyntest.Ignored)
	t.TestFunc("why", func() {}).Ignore(dyntest.IgnoreBecause("why not?"))
}

// Groups nests groups two levels deep.
func Groups(t *dyntest.DynTester) {
	t.Group("foo", func(t *dyntest.DynTester) {
		t.Group("bar", func(t *dyntest.DynTester) {
			t.TestFunc("baz", func() {})
		})
		t.TestFunc("qux", func() {})
	})
}

// Glob checks that every example program goes through dyntest.
func Glob(t *dyntest.DynTester) {
	t.Group("uses_dyntest", func(t *dyntest.DynTester) {
		for name, path := range t.GlobIn("example", "*/main.go") {
			t.Test(name, func() error {
				data, err := os.ReadFile(path)
				if err != nil {
					return err
				}

				if !strings.Contains(string(data), "dyntest.Main") {
					return fmt.Errorf("%s does not call dyntest.Main", path)
				}

				return nil
			})
		}
	})
}

// BasicPanic fails by panicking without an expectation.
func BasicPanic(t *dyntest.DynTester) {
	t.TestFunc("basic_panic", func() { panic("oops") })
}

// WrongPanic panics with a message other than the expected one.
func WrongPanic(t *dyntest.DynTester) {
	t.TestFunc("wrong_panic", func() { panic("bbb") }).ShouldPanic(dyntest.PanicWith("aaa"))
}

// MissingPanic returns normally although a panic is expected.
func MissingPanic(t *dyntest.DynTester) {
	t.TestFunc("missing_panic", func() {}).ShouldPanic(dyntest.PanicWith("aaa"))
}

// IgnoredFailure fails, but only when ignored tests are included.
func IgnoredFailure(t *dyntest.DynTester) {
	t.Test("ignored_failure", func() error {
		return errors.New("this test is ignored for a reason")
	}).Ignore(dyntest.Ignored)
}
