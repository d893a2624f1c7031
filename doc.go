// Package dyntest registers tests at run time.
//
// Instead of declaring one function per test, a program builds a tree of
// named tests from data (files on disk, tables, loop bounds) and hands the
// flat list to the harness in package runner, which filters, runs and
// reports them the way a libtest binary does:
//
//	func main() {
//		dyntest.Main(func(t *dyntest.DynTester) {
//			t.Group("parse", func(t *dyntest.DynTester) {
//				for name, path := range t.GlobIn("testdata", "**/*.json") {
//					t.Test(name, func() error { return checkFile(path) })
//				}
//			})
//		})
//	}
//
// Test names are the enclosing group names and the leaf name joined with
// "::", so the program above registers tests such as parse::nested::empty.
// Run the binary with a substring to select tests, --include-ignored to run
// ignored tests too and --help for the remaining flags.
package dyntest
