// Command ignored_failure is a failing fixture for the harness tests.
package main

import (
	"github.com/rlch/dyntest"
	"github.com/rlch/dyntest/internal/scenarios"
)

func main() {
	dyntest.Main(scenarios.IgnoredFailure)
}
