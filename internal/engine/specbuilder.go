// Package engine adapts the two delegated validation collaborators:
// the spec builder that produces a resolved schema model with
// circular-reference metadata, and the declarative rule engine that
// produces rule violations. Neither engine's logic lives here; the
// adapters translate between the engines' shapes and lint messages.
package engine

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pb33f/libopenapi"
	"github.com/pb33f/libopenapi/datamodel"
	"github.com/pb33f/libopenapi/index"

	"github.com/kolah/oaslint/internal/config"
	"github.com/kolah/oaslint/internal/loader"
	"github.com/kolah/oaslint/internal/result"
)

// circularRefRule is the taxonomy name controlling circular-reference
// findings (shared walker category).
const circularRefRule = "has-circular-references"

// SpecBuilder invokes the delegated validation engine to build a
// resolved schema model from a parsed document.
type SpecBuilder struct {
	Config *config.Config
}

// BuildOutput is the spec builder's result for one file: the engine
// document handed on to the rule engine, the validation messages
// surfaced while resolving, and whether the resolved schema contains
// circular references.
type BuildOutput struct {
	Document libopenapi.Document
	Messages []result.Message
	Circular bool
}

// Build resolves the document against the directory containing it.
// Relative $ref targets are resolved by passing the file's directory
// as an explicit base path to the engine; the process working
// directory is never touched, so concurrent builds cannot race.
func (b *SpecBuilder) Build(ctx context.Context, doc *loader.Document) (*BuildOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	docConfig := &datamodel.DocumentConfiguration{
		BasePath:            basePath(doc.Path),
		AllowFileReferences: true,
	}

	d, err := libopenapi.NewDocumentWithConfiguration(doc.Raw, docConfig)
	if err != nil {
		return nil, fmt.Errorf("building document: %w", err)
	}

	out := &BuildOutput{Document: d}

	var idx *index.SpecIndex
	if doc.Version == "2.0" {
		model, err := d.BuildV2Model()
		if err != nil {
			out.Messages = append(out.Messages, resolveMessages(err)...)
		}
		if model != nil {
			idx = model.Index
		}
	} else {
		model, err := d.BuildV3Model()
		if err != nil {
			out.Messages = append(out.Messages, resolveMessages(err)...)
		}
		if model != nil {
			idx = model.Index
		}
	}

	if idx != nil {
		out.Messages = append(out.Messages, b.circularMessages(idx, &out.Circular)...)
	}

	return out, nil
}

func basePath(specPath string) string {
	if specPath == "" {
		return "."
	}
	abs, err := filepath.Abs(specPath)
	if err != nil {
		return filepath.Dir(specPath)
	}
	return filepath.Dir(abs)
}

// resolveMessages converts the engine's (possibly joined) build errors
// into lint messages. Resolution failures are always errors; they mean
// the resolved schema object could not be fully constructed.
func resolveMessages(err error) []result.Message {
	var msgs []result.Message
	for _, e := range unwrapJoined(err) {
		m := result.Message{
			Message:  e.Error(),
			Rule:     "spec-builder",
			Line:     1,
			Severity: result.SeverityError,
		}
		var resErr *index.ResolvingError
		if errors.As(e, &resErr) {
			if resErr.Node != nil {
				m.Line = resErr.Node.Line
			}
			if resErr.Path != "" {
				m.Path = splitPointer(resErr.Path)
			}
		}
		m.Fingerprint = Fingerprint(m)
		msgs = append(msgs, m)
	}
	return msgs
}

// circularMessages reports circular references tracked by the engine's
// index at the configured severity for the walker rule.
func (b *SpecBuilder) circularMessages(idx *index.SpecIndex, circular *bool) []result.Message {
	refs := idx.GetCircularReferences()
	if len(refs) == 0 {
		return nil
	}
	*circular = true

	severity := result.SeverityWarning
	if b.Config != nil {
		if setting, ok := b.Config.Setting("", circularRefRule); ok {
			if setting.Severity == result.SeverityOff {
				return nil
			}
			severity = setting.Severity
		}
	}

	var msgs []result.Message
	for _, ref := range refs {
		m := result.Message{
			Message:  "circular reference detected: " + ref.GenerateJourneyPath(),
			Rule:     circularRefRule,
			Line:     1,
			Severity: severity,
		}
		if ref.LoopPoint != nil {
			if ref.LoopPoint.Node != nil {
				m.Line = ref.LoopPoint.Node.Line
			}
			m.Path = splitPointer(ref.LoopPoint.Definition)
		}
		m.Fingerprint = Fingerprint(m)
		msgs = append(msgs, m)
	}
	return msgs
}

// unwrapJoined flattens errors combined with errors.Join; a plain error
// comes back as a single-element slice.
func unwrapJoined(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

// splitPointer turns a JSON-pointer-ish location like
// "#/components/schemas/Pet" into a key sequence.
func splitPointer(p string) []string {
	p = strings.TrimPrefix(p, "#")
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	parts := strings.Split(p, "/")
	for i, part := range parts {
		part = strings.ReplaceAll(part, "~1", "/")
		parts[i] = strings.ReplaceAll(part, "~0", "~")
	}
	return parts
}
