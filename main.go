package dyntest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"go.uber.org/zap"

	"github.com/rlch/dyntest/runner"
)

// Main registers tests with f and runs them with the command-line arguments
// of the process, then exits with the harness's exit code. Call it from a
// program's main function:
//
//	func main() {
//		dyntest.Main(func(t *dyntest.DynTester) {
//			t.Test("answer", func() error { return nil })
//		})
//	}
func Main(f func(*DynTester)) {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr, caller(), f))
}

// MainGroups is Main with each function registered as a group of its name.
func MainGroups(fns ...NamedFunc) {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr, caller(), func(t *DynTester) {
		t.Groups(fns...)
	}))
}

// Run is Main without the exit: it writes to stdout and stderr and returns
// the exit code. args[0] is the program name.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer, f func(*DynTester)) int {
	return run(ctx, args, stdout, stderr, caller(), f)
}

// Collect registers tests with f and returns their descriptors. Relative
// paths resolve against FindRoot of the caller's file.
func Collect(f func(*DynTester)) []runner.Test {
	loc := caller()
	t := newTester(FindRoot(loc.File), loc, nil)

	f(t)

	return descriptors(t, loc)
}

// caller returns the location of the exported entry point's caller.
func caller() Location {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return Location{}
	}

	return Location{File: file, Line: line}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer, loc Location, f func(*DynTester)) int {
	root := FindRoot(loc.File)

	cfg, err := LoadConfig(root)
	if errors.Is(err, ErrConfigNotFound) {
		cfg, err = &Config{}, nil
	}

	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: loading config: %v\n", err)

		return runner.ExitFailure
	}

	logger, err := newLogger(stderr, logLevel(cfg))
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %s: %v\n", LogEnv, err)

		return runner.ExitFailure
	}

	defer func() {
		_ = logger.Sync()
	}()

	logger.Debug("registering tests", zap.String("root", root), zap.Stringer("source", loc))

	tests, err := register(root, loc, logger, f)
	if err != nil {
		logger.Error("registration failed", zap.Error(err))
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)

		return runner.ExitFailure
	}

	h := &runner.Harness{
		Stdout:   stdout,
		Stderr:   stderr,
		Defaults: cfg.Defaults(),
		Logger:   logger,
	}

	return h.Main(ctx, args, tests)
}

// register runs the registration pass. Fatal registration errors raised as
// panics by discovery are returned; any other panic propagates.
func register(root string, loc Location, logger *zap.Logger, f func(*DynTester)) (tests []runner.Test, err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		if e, ok := r.(error); ok && isRegistrationError(e) {
			err = e

			return
		}

		panic(r)
	}()

	t := newTester(root, loc, logger)

	f(t)

	return descriptors(t, loc), nil
}

func descriptors(t *DynTester, loc Location) []runner.Test {
	drained := t.drain()

	tests := make([]runner.Test, len(drained))
	for i, d := range drained {
		tests[i] = d.descriptor(loc)
	}

	return tests
}
