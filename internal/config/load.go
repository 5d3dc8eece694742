package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// configFileNames is the discovery search order within one directory.
// YAML parses JSON, so the .json variant shares a parser.
var configFileNames = []string{".oaslint.yaml", ".oaslint.yml", ".oaslint.json"}

// Load builds the effective configuration from an explicit override
// file path. The override is deep-merged on top of the built-in
// defaults: override wins leaf-by-leaf, unspecified keys inherit the
// default. Errors here are configuration-invalid and fatal to the run.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("loading default config: %w", err)
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	cfg, err := fromMap(k.Raw())
	if err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Discover looks for a config file starting at startDir and walking up
// to the filesystem root, stopping at a .git boundary. First match
// wins. Any error while searching falls back to the built-in defaults
// silently; a file that is found but invalid is a configuration error.
func Discover(startDir string) (*Config, error) {
	path := discoverPath(startDir)
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

func discoverPath(startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}

	for {
		for _, name := range configFileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate
			}
		}

		// A .git directory marks the repository root; do not search
		// above it.
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return ""
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
