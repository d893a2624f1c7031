package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitUsage   = 1
	ExitFailure = 101
)

// Defaults are harness settings applied when the matching flag is absent.
type Defaults struct {
	Threads        int
	Format         string
	Color          string
	IncludeIgnored bool
}

// Harness parses libtest-style command lines and runs tests.
type Harness struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Defaults Defaults
	Logger   *zap.Logger
}

// Main parses args (args[0] is the program name), runs the selected tests
// and returns the process exit code.
func (h *Harness) Main(ctx context.Context, args []string, tests []Test) int {
	if h.Stdout == nil {
		h.Stdout = os.Stdout
	}

	if h.Stderr == nil {
		h.Stderr = os.Stderr
	}

	if h.Logger == nil {
		h.Logger = zap.NewNop()
	}

	code := ExitOK
	cmd := h.command(ProgramName(args), tests, &code)

	if len(args) == 0 {
		args = []string{cmd.Name}
	}

	if err := cmd.Run(ctx, args); err != nil {
		h.Logger.Debug("harness error", zap.Error(err))
		_, _ = fmt.Fprintf(h.Stderr, "error: %v\n", err)

		if errors.Is(err, errFailures) {
			return ExitFailure
		}

		return ExitUsage
	}

	return code
}

// errFailures marks errors raised after tests started running.
var errFailures = errors.New("runner: run aborted")

func (h *Harness) command(name string, tests []Test, code *int) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     "run dynamically registered tests",
		ArgsUsage: "[FILTER...]",
		Writer:    h.Stdout,
		ErrWriter: h.Stderr,

		// Positional arguments are filters, so `help` must not be a subcommand.
		HideHelpCommand: true,

		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "include-ignored",
				Usage: "run ignored and not ignored tests",
			},
			&cli.BoolFlag{
				Name:  "ignored",
				Usage: "run only ignored tests",
			},
			&cli.BoolFlag{
				Name:  "exact",
				Usage: "exactly match filters rather than by substring",
			},
			&cli.StringSliceFlag{
				Name:  "skip",
				Usage: "skip tests whose names contain `FILTER` (may be repeated)",
			},
			&cli.BoolFlag{
				Name:  "list",
				Usage: "list all tests",
			},
			&cli.IntFlag{
				Name:    "test-threads",
				Usage:   "number of threads used for running tests in parallel",
				Sources: cli.EnvVars("DYNTEST_THREADS"),
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "output format: pretty, terse or json",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "display one character per test instead of one line (alias of --format=terse)",
			},
			&cli.StringFlag{
				Name:  "color",
				Usage: "coloring: auto, always or never",
			},
			&cli.BoolFlag{
				Name:  "fail-fast",
				Usage: "stop on first failure",
			},
			&cli.BoolFlag{
				Name:  "nocapture",
				Usage: "accepted for compatibility; output is never captured",
			},
			&cli.BoolFlag{
				Name:  "show-output",
				Usage: "accepted for compatibility; output is never captured",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return h.run(ctx, cmd, tests, code)
		},
	}
}

func (h *Harness) run(ctx context.Context, cmd *cli.Command, tests []Test, code *int) error {
	threads := h.Defaults.Threads
	if cmd.IsSet("test-threads") {
		threads = int(cmd.Int("test-threads"))
	}

	includeIgnored := h.Defaults.IncludeIgnored
	if cmd.IsSet("include-ignored") {
		includeIgnored = cmd.Bool("include-ignored")
	}

	mode := SkipIgnored

	switch {
	case cmd.Bool("ignored"):
		mode = OnlyIgnored
	case includeIgnored:
		mode = IncludeIgnored
	}

	opts := []Option{
		WithFilters(cmd.Args().Slice()...),
		WithExact(cmd.Bool("exact")),
		WithSkip(cmd.StringSlice("skip")...),
		WithIgnoreMode(mode),
		WithThreads(threads),
		WithFailFast(cmd.Bool("fail-fast")),
		WithLogger(h.Logger),
	}

	if cmd.Bool("list") {
		return h.list(New(opts...), tests)
	}

	format := firstNonEmpty(cmd.String("format"), h.Defaults.Format, FormatPretty)
	if cmd.Bool("quiet") {
		format = FormatTerse
	}

	p, err := NewPalette(h.Stdout, firstNonEmpty(cmd.String("color"), h.Defaults.Color, ColorAuto))
	if err != nil {
		return err
	}

	formatter, err := NewFormatter(format, h.Stdout, p)
	if err != nil {
		return err
	}

	handler := NewFormatHandler(formatter)
	r := New(append(opts, WithHandler(handler))...)

	result, err := r.Run(ctx, tests)
	if err != nil {
		return fmt.Errorf("%w: %w", errFailures, err)
	}

	if err := handler.Summary(result); err != nil {
		return fmt.Errorf("%w: %w", errFailures, err)
	}

	if !result.Ok() {
		*code = ExitFailure
	}

	return nil
}

// list prints the selected tests in libtest's `name: test` form.
func (h *Harness) list(r *Runner, tests []Test) error {
	selected, _ := r.Select(tests)

	for _, t := range selected {
		if _, err := fmt.Fprintf(h.Stdout, "%s: test\n", t.Name); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(h.Stdout, "\n%d %s, 0 benchmarks\n", len(selected), plural(len(selected), "test", "tests"))

	return err
}

// ProgramName returns the base name of args[0], or "dyntest".
func ProgramName(args []string) string {
	if len(args) == 0 || args[0] == "" {
		return "dyntest"
	}

	return filepath.Base(args[0])
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
