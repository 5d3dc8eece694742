package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, dir, rel string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x: 1\n"), 0644))
}

func relative(t *testing.T, base string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		rel, err := filepath.Rel(base, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestDiscoverMatchesSpecExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "api.yaml")
	touch(t, dir, "api.yml")
	touch(t, dir, "api.json")
	touch(t, dir, "specs/v2/pets.yaml")
	touch(t, dir, "readme.md")
	touch(t, dir, "main.go")

	files, err := Discover(dir, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"api.json",
		"api.yaml",
		"api.yml",
		"specs/v2/pets.yaml",
	}, relative(t, dir, files))
}

func TestDiscoverSkipsDotDirectories(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "api.yaml")
	touch(t, dir, ".github/workflows/ci.yaml")
	touch(t, dir, ".cache/spec.json")

	files, err := Discover(dir, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"api.yaml"}, relative(t, dir, files))
}

func TestDiscoverHonorsIgnorePatterns(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "api.yaml")
	touch(t, dir, "node_modules/pkg/openapi.yaml")
	touch(t, dir, "vendor/dep/spec.json")
	touch(t, dir, "fixtures/broken.yaml")

	files, err := Discover(dir, []string{"node_modules/**", "vendor/**", "fixtures/*.yaml"})
	require.NoError(t, err)

	assert.Equal(t, []string{"api.yaml"}, relative(t, dir, files))
}

func TestDiscoverInvalidIgnorePatternSkipped(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "api.yaml")

	files, err := Discover(dir, []string{"["})
	require.NoError(t, err)
	assert.Len(t, files, 1)
}
