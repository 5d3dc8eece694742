package loader

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v4"
)

// ErrUnsupportedFormat is returned for file extensions other than
// json, yaml and yml.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrMissingDescriptor is returned when a parsed document carries
// neither an openapi field nor swagger: "2.0". It is distinguishable
// from parse failures so that auto-discovered non-spec files can be
// skipped silently.
var ErrMissingDescriptor = errors.New("no openapi or swagger descriptor found")

// Document is the generic parsed tree for one file, owned by the
// per-file lint operation and discarded after use.
type Document struct {
	// Path is the location the document was read from.
	Path string
	// Raw is the preprocessed file content handed to the engines.
	Raw []byte
	// Root is the document's root mapping node.
	Root *yaml.Node
	// Version is the declared openapi or swagger version string.
	Version string
}

// Load reads and parses the spec file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec file: %w", err)
	}

	doc, err := Parse(data, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return nil, err
	}
	doc.Path = path
	return doc, nil
}

// Parse preprocesses and parses raw content with the given extension.
// Preprocessing strips a UTF-8 byte-order mark and normalizes CRLF/CR
// line endings; both transformations preserve line-number
// correspondence with the original file.
func Parse(data []byte, ext string) (*Document, error) {
	switch strings.ToLower(ext) {
	case "json", "yaml", "yml":
	default:
		return nil, fmt.Errorf("%w: %q (supported: json, yaml, yml)", ErrUnsupportedFormat, ext)
	}

	data = preprocess(data)

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, ErrMissingDescriptor
	}

	version, err := declaredVersion(root.Content[0])
	if err != nil {
		return nil, err
	}

	return &Document{Raw: data, Root: root.Content[0], Version: version}, nil
}

// preprocess normalizes raw text before syntactic parsing. It must run
// before validation and must keep one output line per input line.
func preprocess(data []byte) []byte {
	data = bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))
	return data
}

// declaredVersion extracts the openapi or swagger version from the root
// mapping. A swagger document must declare exactly "2.0".
func declaredVersion(root *yaml.Node) (string, error) {
	if root.Kind != yaml.MappingNode {
		return "", ErrMissingDescriptor
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode || value.Kind != yaml.ScalarNode {
			continue
		}
		switch key.Value {
		case "openapi":
			if value.Value != "" {
				return value.Value, nil
			}
		case "swagger":
			if value.Value == "2.0" {
				return value.Value, nil
			}
		}
	}

	return "", ErrMissingDescriptor
}
