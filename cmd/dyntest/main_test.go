package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	err := newApp(&stdout, &stderr).Run(context.Background(), append([]string{"dyntest"}, args...))

	return stdout.String(), stderr.String(), err
}

func fixture(t *testing.T) string {
	t.Helper()

	root := t.TempDir()

	for _, f := range []string{"cases/one.json", "cases/nested/two.json", "cases/skip.json", "README.md"} {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	}

	require.NoError(t, os.WriteFile(filepath.Join(root, "cases", ".gitignore"), []byte("skip.json\n"), 0o644))

	return root
}

func TestGlobCommand(t *testing.T) {
	t.Parallel()

	root := fixture(t)

	stdout, stderr, err := runApp(t, "--root", root, "glob", "--base", "cases", "**/*.json")
	require.NoError(t, err)
	assert.Equal(t, "nested::two\none\nskip\n", stdout)
	assert.Equal(t, "3 matches\n", stderr)
}

func TestGlobCommand_RespectIgnore(t *testing.T) {
	t.Parallel()

	root := fixture(t)

	stdout, _, err := runApp(t, "--root", root, "glob", "--respect-ignore", "--paths", "cases/**/*.JSON")
	require.NoError(t, err)
	assert.Equal(t,
		"cases::nested::two\t"+filepath.Join(root, "cases", "nested", "two.json")+"\n"+
			"cases::one\t"+filepath.Join(root, "cases", "one.json")+"\n",
		stdout)
}

func TestGlobCommand_Errors(t *testing.T) {
	t.Parallel()

	root := fixture(t)

	_, _, err := runApp(t, "--root", root, "glob")
	require.ErrorIs(t, err, ErrNoPattern)

	_, _, err = runApp(t, "--root", root, "glob", "[")
	require.ErrorContains(t, err, "invalid glob pattern")

	_, _, err = runApp(t, "--root", root, "glob", "--base", "missing", "*")
	require.ErrorContains(t, err, "discovery failed")
}

func TestConfigCommand(t *testing.T) {
	t.Parallel()

	root := t.TempDir()

	stdout, _, err := runApp(t, "--root", root, "config")
	require.NoError(t, err)
	assert.Contains(t, stdout, "# root: "+root+"\n")
	assert.Contains(t, stdout, "# config: none\n")

	path := filepath.Join(root, ".dyntest.yaml")
	require.NoError(t, os.WriteFile(path, []byte("format: terse\ntest_threads: 4\n"), 0o644))

	stdout, _, err = runApp(t, "--root", root, "config")
	require.NoError(t, err)
	assert.Contains(t, stdout, "# config: "+path+"\n")
	assert.Contains(t, stdout, "test_threads: 4\n")
	assert.Contains(t, stdout, "format: terse\n")
}
