// Command config shows the ignore and should-panic directives.
package main

import (
	"github.com/rlch/dyntest"
	"github.com/rlch/dyntest/internal/scenarios"
)

func main() {
	dyntest.MainGroups(scenarios.Config...)
}
