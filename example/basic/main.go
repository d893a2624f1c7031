// Command basic registers a test per table entry.
package main

import (
	"github.com/rlch/dyntest"
	"github.com/rlch/dyntest/internal/scenarios"
)

func main() {
	dyntest.Main(scenarios.Basic)
}
