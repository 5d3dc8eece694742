// Package discovery finds candidate spec files when no paths are named
// on the command line.
package discovery

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"
)

// specPattern matches every file auto-discovery considers a spec
// candidate. Files without an openapi/swagger descriptor are filtered
// later, after parsing.
const specPattern = "**/*.{yaml,yml,json}"

// Discover walks baseDir and returns matching files, sorted, excluding
// configured ignore patterns and dot-directories.
func Discover(baseDir string, ignore []string) ([]string, error) {
	ignoreGlobs := compileIgnores(ignore)

	var files []string
	err := filepath.WalkDir(baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(baseDir, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && (strings.HasPrefix(d.Name(), ".") || isIgnored(ignoreGlobs, rel+"/", d.Name())) {
				return filepath.SkipDir
			}
			return nil
		}

		if matched, _ := doublestar.Match(specPattern, rel); !matched {
			return nil
		}
		if isIgnored(ignoreGlobs, rel, d.Name()) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func compileIgnores(patterns []string) []glob.Glob {
	var globs []glob.Glob
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			// Invalid patterns are skipped silently.
			continue
		}
		globs = append(globs, g)
	}
	return globs
}

func isIgnored(globs []glob.Glob, rel, base string) bool {
	for _, g := range globs {
		if g.Match(rel) || g.Match(strings.TrimSuffix(rel, "/")) || g.Match(base) {
			return true
		}
	}
	return false
}
