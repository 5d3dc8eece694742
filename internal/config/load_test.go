package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolah/oaslint/internal/result"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadEmptyOverrideKeepsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), ".oaslint.yaml", "{}\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	// Deep-merging an empty override yields the defaults unchanged.
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverrideWinsLeafByLeaf(t *testing.T) {
	path := writeConfig(t, t.TempDir(), ".oaslint.yaml", `
shared:
  operations:
    no-summary: "off"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	// The overridden leaf changed...
	r, ok := cfg.Setting("3.0.0", "no-summary")
	require.True(t, ok)
	assert.Equal(t, result.SeverityOff, r.Severity)

	// ...while siblings in the same category kept their defaults: the
	// merge is leaf-by-leaf, not whole-subtree replacement.
	r, ok = cfg.Setting("3.0.0", "no-operation-id")
	require.True(t, ok)
	assert.Equal(t, result.SeverityWarning, r.Severity)
}

func TestLoadJSONOverride(t *testing.T) {
	path := writeConfig(t, t.TempDir(), ".oaslint.json",
		`{"rule-engine": {"info-contact": "off"}}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	r, ok := cfg.Setting("3.0.0", "info-contact")
	require.True(t, ok)
	assert.Equal(t, result.SeverityOff, r.Severity)
}

func TestLoadInvalidSeverityFails(t *testing.T) {
	path := writeConfig(t, t.TempDir(), ".oaslint.yaml", `
shared:
  operations:
    no-summary: severe
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid severity")
}

func TestLoadMissingFileFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestDiscoverFindsConfigInParent(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, ".oaslint.yml", `
shared:
  operations:
    no-summary: error
`)
	nested := filepath.Join(root, "specs", "v1")
	require.NoError(t, os.MkdirAll(nested, 0755))

	cfg, err := Discover(nested)
	require.NoError(t, err)

	r, ok := cfg.Setting("3.0.0", "no-summary")
	require.True(t, ok)
	assert.Equal(t, result.SeverityError, r.Severity)
}

func TestDiscoverStopsAtGitBoundary(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, ".oaslint.yaml", `
shared:
  operations:
    no-summary: error
`)

	// The nested repo root has a .git directory, so the search must not
	// climb past it to the outer config.
	repo := filepath.Join(root, "repo")
	require.NoError(t, os.MkdirAll(filepath.Join(repo, ".git"), 0755))

	cfg, err := Discover(repo)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDiscoverFallsBackToDefaults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "isolated")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".git"), 0755))

	cfg, err := Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
