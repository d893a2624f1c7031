// Command dyntest inspects dynamic test discovery: it previews the names a
// glob would register and shows the effective harness configuration.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rlch/dyntest"
)

func main() {
	app := newApp(os.Stdout, os.Stderr)

	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "dyntest",
		Usage:     "inspect dynamic test discovery",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "root",
				Usage:   "directory relative paths resolve against (default: working directory)",
				Sources: cli.EnvVars(dyntest.RootEnv),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "log discovery to stderr",
			},
		},
		Commands: []*cli.Command{
			globCommand(),
			configCommand(),
		},
	}
}

// rootDir returns --root, falling back to the working directory.
func rootDir(cmd *cli.Command) (string, error) {
	if root := cmd.String("root"); root != "" {
		return root, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getting cwd: %w", err)
	}

	return wd, nil
}

func newLogger(cmd *cli.Command) (*zap.Logger, error) {
	if !cmd.Bool("debug") {
		return zap.NewNop(), nil
	}

	config := zap.NewDevelopmentConfig()
	config.OutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)

	return config.Build()
}
