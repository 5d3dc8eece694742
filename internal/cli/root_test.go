package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalSpec = `openapi: 3.0.3
info:
  title: Pets
  version: 1.0.0
paths: {}
`

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := RootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestInvalidConfigExitsTwo(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, ".oaslint.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("shared:\n  operations:\n    no-summary: severe\n"), 0644))

	_, _, err := execute(t, "--config", cfgPath)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Err.Error(), "invalid severity")
}

func TestNoFilesLintedExitsTwo(t *testing.T) {
	dir := t.TempDir()
	// The .git directory pins config discovery to the empty directory.
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0755))
	t.Chdir(dir)

	_, _, err := execute(t)

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, exitErr.Err.Error(), "no files were linted")
}

func TestCleanExplicitFileExitsZero(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0755))
	t.Chdir(dir)
	spec := filepath.Join(dir, "api.yaml")
	require.NoError(t, os.WriteFile(spec, []byte(minimalSpec), 0644))

	out, _, err := execute(t, spec)

	require.NoError(t, err)
	// A clean run prints nothing.
	assert.Empty(t, out)
}

func TestExplicitNonSpecFileExitsTwo(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0755))
	t.Chdir(dir)
	path := filepath.Join(dir, "values.yaml")
	require.NoError(t, os.WriteFile(path, []byte("replicas: 3\n"), 0644))

	_, errOut, err := execute(t, path)

	// The file is excluded, so zero files were linted; the descriptor
	// failure is surfaced because the file was named explicitly.
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
	assert.Contains(t, errOut, "values.yaml")
}
