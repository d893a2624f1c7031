package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/rlch/dyntest"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:   "config",
		Usage:  "show the root directory and the effective .dyntest.yaml",
		Action: runConfig,
	}
}

func runConfig(_ context.Context, cmd *cli.Command) error {
	root, err := rootDir(cmd)
	if err != nil {
		return err
	}

	w := cmd.Root().Writer

	_, _ = fmt.Fprintf(w, "# root: %s\n", root)

	cfg := &dyntest.Config{}

	path, err := dyntest.FindConfig(root)

	switch {
	case errors.Is(err, dyntest.ErrConfigNotFound):
		_, _ = fmt.Fprintln(w, "# config: none")
	case err != nil:
		return err
	default:
		_, _ = fmt.Fprintf(w, "# config: %s\n", path)

		cfg, err = dyntest.LoadConfigFile(path)
		if err != nil {
			return fmt.Errorf("loading %s: %w", path, err)
		}
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(cfg); err != nil {
		return err
	}

	return enc.Close()
}
