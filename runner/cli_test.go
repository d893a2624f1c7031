package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runHarness(t *testing.T, tests []Test, args ...string) (int, string, string) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	h := &Harness{Stdout: &stdout, Stderr: &stderr}
	code := h.Main(context.Background(), append([]string{"prog"}, args...), tests)

	return code, stdout.String(), stderr.String()
}

func sampleTests() []Test {
	return []Test{
		passing("foo::bar::baz"),
		passing("foo::qux"),
		{Name: "foo::skipped", Ignore: true, IgnoreMessage: "slow", Fn: func() error { return errTestFail }},
	}
}

func TestHarness_Main(t *testing.T) {
	t.Parallel()

	code, out, _ := runHarness(t, sampleTests())

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, "running 3 tests")
	assert.Contains(t, out, "test foo::skipped ... ignored, slow")
	assert.Contains(t, out, "2 passed; 0 failed; 1 ignored; 0 measured; 0 filtered out")
}

func TestHarness_Filter(t *testing.T) {
	t.Parallel()

	code, out, _ := runHarness(t, sampleTests(), "bar")

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, "1 passed; 0 failed; 0 ignored; 0 measured; 2 filtered out")
}

func TestHarness_IncludeIgnored(t *testing.T) {
	t.Parallel()

	code, out, _ := runHarness(t, sampleTests(), "--include-ignored")

	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, out, "2 passed; 1 failed; 0 ignored; 0 measured; 0 filtered out")
	assert.Contains(t, out, "failures:\n    foo::skipped")
}

func TestHarness_OnlyIgnored(t *testing.T) {
	t.Parallel()

	code, out, _ := runHarness(t, sampleTests(), "--ignored")

	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, out, "0 passed; 1 failed; 0 ignored; 0 measured; 2 filtered out")
}

func TestHarness_List(t *testing.T) {
	t.Parallel()

	code, out, _ := runHarness(t, sampleTests(), "--list", "qux")

	assert.Equal(t, ExitOK, code)
	assert.Equal(t, "foo::qux: test\n\n1 test, 0 benchmarks\n", out)
}

func TestHarness_Quiet(t *testing.T) {
	t.Parallel()

	code, out, _ := runHarness(t, sampleTests(), "-q", "--test-threads", "1")

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, "..i\n")
}

func TestHarness_JSON(t *testing.T) {
	t.Parallel()

	code, out, _ := runHarness(t, sampleTests(), "--format", "json")
	require.Equal(t, ExitOK, code)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.NotEmpty(t, lines)

	var last map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &last))
	assert.Equal(t, "suite", last["type"])
	assert.Equal(t, "ok", last["event"])
	assert.InDelta(t, 2, last["passed"], 0)
}

func TestHarness_Defaults(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	h := &Harness{
		Stdout:   &stdout,
		Stderr:   &stderr,
		Defaults: Defaults{Format: FormatTerse, IncludeIgnored: true, Threads: 1},
	}

	code := h.Main(context.Background(), []string{"prog"}, sampleTests())

	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, stdout.String(), "..F")
}

func TestHarness_DefaultsOverriddenByFlag(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer

	h := &Harness{
		Stdout:   &stdout,
		Stderr:   &stderr,
		Defaults: Defaults{IncludeIgnored: true},
	}

	code := h.Main(context.Background(), []string{"prog", "--include-ignored=false"}, sampleTests())

	assert.Equal(t, ExitOK, code, "stderr: %s", stderr.String())
	assert.Contains(t, stdout.String(), "2 passed; 0 failed; 1 ignored; 0 measured; 0 filtered out")
}

func TestHarness_FilterNamedLikeHelp(t *testing.T) {
	t.Parallel()

	tests := []Test{passing("help_text"), passing("h"), passing("other")}

	for _, tt := range []struct {
		filter string
		stats  string
	}{
		{"h", "3 passed; 0 failed; 0 ignored; 0 measured; 0 filtered out"},
		{"help", "1 passed; 0 failed; 0 ignored; 0 measured; 2 filtered out"},
		{"help_text", "1 passed; 0 failed; 0 ignored; 0 measured; 2 filtered out"},
	} {
		t.Run(tt.filter, func(t *testing.T) {
			t.Parallel()

			code, out, _ := runHarness(t, tests, tt.filter)

			assert.Equal(t, ExitOK, code)
			assert.NotContains(t, out, "USAGE:")
			assert.Contains(t, out, tt.stats)
		})
	}

	code, out, _ := runHarness(t, tests, "--help")

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out, "USAGE:")
	assert.NotContains(t, out, "running")
}

func TestHarness_BadFormat(t *testing.T) {
	t.Parallel()

	code, _, errOut := runHarness(t, sampleTests(), "--format", "xml")

	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, errOut, "unknown format")
}

func TestProgramName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "dyntest", ProgramName(nil))
	assert.Equal(t, "basic", ProgramName([]string{"/tmp/go-build/basic"}))
}
