// Package runner drives the per-file lint pipeline with bounded
// concurrency and per-file failure isolation.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/kolah/oaslint/internal/config"
	"github.com/kolah/oaslint/internal/engine"
	"github.com/kolah/oaslint/internal/loader"
	"github.com/kolah/oaslint/internal/result"
)

// defaultConcurrency caps simultaneous file handles and delegated
// engine invocations.
const defaultConcurrency = 8

// Runner lints a set of files against one merged configuration.
type Runner struct {
	Config *config.Config
	Logger *slog.Logger
	// Explicit marks files named on the command line: a missing
	// openapi/swagger descriptor is then a visible per-file error
	// instead of a silent skip.
	Explicit bool
	// Concurrency overrides the default task-pool limit when positive.
	Concurrency int
}

// Run lints all files and returns the successfully linted results in
// input order plus the count of excluded files. One file's failure
// never aborts the others; failing files are logged and excluded from
// the aggregate.
func (r *Runner) Run(ctx context.Context, files []string) ([]result.FileResult, int) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	limit := r.Concurrency
	if limit <= 0 {
		limit = defaultConcurrency
	}

	slots := make([]*result.Result, len(files))
	var (
		mu     sync.Mutex
		failed int
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, path := range files {
		g.Go(func() error {
			res, err := r.lintFile(ctx, path)
			if err != nil {
				if errors.Is(err, loader.ErrMissingDescriptor) && !r.Explicit {
					logger.Debug("skipping file without openapi/swagger descriptor", "file", path)
				} else {
					logger.Error("skipping file", "file", path, "error", err)
				}
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}
			slots[i] = res
			return nil
		})
	}
	_ = g.Wait()

	results := make([]result.FileResult, 0, len(files))
	for i, res := range slots {
		if res != nil {
			results = append(results, result.FileResult{File: files[i], Result: res})
		}
	}
	return results, failed
}

// lintFile runs the full pipeline for one file: load, build the
// resolved schema, evaluate the rule engine, merge. A file either fully
// succeeds or is entirely excluded; no partial results.
func (r *Runner) lintFile(ctx context.Context, path string) (*result.Result, error) {
	doc, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	builder := &engine.SpecBuilder{Config: r.Config}
	build, err := builder.Build(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("spec builder: %w", err)
	}

	rules := &engine.RuleEngine{Config: r.Config, Fingerprint: engine.Fingerprint}
	violations, err := rules.Run(ctx, build.Document, doc.Version)
	if err != nil {
		return nil, fmt.Errorf("rule engine: %w", err)
	}

	return result.Merge(doc.Version, build.Messages, violations), nil
}
