package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/rlch/dyntest"
)

// ErrNoPattern is returned when glob is run without a pattern.
var ErrNoPattern = errors.New("no pattern given")

func globCommand() *cli.Command {
	return &cli.Command{
		Name:      "glob",
		Usage:     "list the test names a glob registers",
		ArgsUsage: "PATTERN",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "base",
				Aliases: []string{"b"},
				Usage:   "directory under the root the pattern is matched in",
				Value:   ".",
			},
			&cli.BoolFlag{
				Name:  "respect-ignore",
				Usage: "skip files excluded by .gitignore and .ignore files",
			},
			&cli.BoolFlag{
				Name:  "paths",
				Usage: "print the matched path after each name",
			},
		},
		Action: runGlob,
	}
}

func runGlob(_ context.Context, cmd *cli.Command) (err error) {
	if cmd.Args().Len() != 1 {
		return ErrNoPattern
	}

	root, err := rootDir(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}

	defer func() {
		_ = logger.Sync()
	}()

	// Discovery reports bad patterns and unreadable entries by panicking.
	defer func() {
		if r := recover(); r != nil {
			e, ok := r.(error)
			if !ok {
				panic(r)
			}

			err = e
		}
	}()

	t := dyntest.NewTester(root, logger)
	opts := dyntest.GlobOptions{RespectIgnoreFiles: cmd.Bool("respect-ignore")}
	n := 0

	for name, path := range t.GlobInWith(cmd.String("base"), cmd.Args().First(), opts) {
		n++

		if cmd.Bool("paths") {
			_, _ = fmt.Fprintf(cmd.Root().Writer, "%s\t%s\n", name, path)

			continue
		}

		_, _ = fmt.Fprintln(cmd.Root().Writer, name)
	}

	_, _ = fmt.Fprintf(cmd.Root().ErrWriter, "%d %s\n", n, plural(n, "match", "matches"))

	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}

	return many
}
