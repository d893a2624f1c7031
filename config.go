package dyntest

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rlch/dyntest/runner"
)

// Config represents the .dyntest.yaml configuration file. Every field is a
// default that the matching command-line flag overrides.
type Config struct {
	// TestThreads is the default for --test-threads.
	TestThreads int `yaml:"test_threads,omitempty"`

	// Format is the default for --format (pretty, terse, json).
	Format string `yaml:"format,omitempty"`

	// Color is the default for --color (auto, always, never).
	Color string `yaml:"color,omitempty"`

	// IncludeIgnored runs ignored tests unless --ignored is given.
	IncludeIgnored bool `yaml:"include_ignored,omitempty"`

	// LogLevel enables registration and discovery logging on stderr.
	// DYNTEST_LOG takes precedence.
	LogLevel string `yaml:"log_level,omitempty"`
}

// Defaults converts the config into harness defaults.
func (c *Config) Defaults() runner.Defaults {
	return runner.Defaults{
		Threads:        c.TestThreads,
		Format:         c.Format,
		Color:          c.Color,
		IncludeIgnored: c.IncludeIgnored,
	}
}

// DefaultConfigNames are the filenames we search for.
var DefaultConfigNames = []string{".dyntest.yaml", ".dyntest.yml", "dyntest.yaml", "dyntest.yml"}

// LoadConfig finds and loads the nearest .dyntest.yaml walking up from dir.
func LoadConfig(dir string) (*Config, error) {
	path, err := FindConfig(dir)
	if err != nil {
		return nil, err
	}

	return LoadConfigFile(path)
}

// FindConfig searches for a config file starting from dir and walking up.
func FindConfig(dir string) (string, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}

	for dir := absDir; ; {
		for _, name := range DefaultConfigNames {
			path := filepath.Join(dir, name)

			_, err := os.Stat(path)
			if err == nil {
				return path, nil
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrConfigNotFound
		}

		dir = parent
	}
}

// LoadConfigFile loads a config from a specific path.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	var cfg Config

	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// RootEnv overrides the directory that relative discovery paths resolve against.
const RootEnv = "DYNTEST_ROOT"

// FindRoot returns the directory relative paths resolve against: $DYNTEST_ROOT
// if set, else the nearest directory above source containing go.mod, else
// the working directory.
func FindRoot(source string) string {
	if root := os.Getenv(RootEnv); root != "" {
		return root
	}

	if filepath.IsAbs(source) {
		for dir := filepath.Dir(source); ; {
			if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
				return dir
			}

			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}

			dir = parent
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return "."
	}

	return wd
}
