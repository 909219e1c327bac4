package validate

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wetshaving/sotdarc/internal/model"
	"github.com/wetshaving/sotdarc/internal/parser"
)

// Batch validates many report files concurrently.
// It uses errgroup to manage goroutines and respect concurrency limits.
//
// Design decision: We use a separate Batch rather than adding multi-file
// handling to Runner because:
// 1. It keeps the Runner focused on single-report execution
// 2. Parsing and checking one file is independent of every other file
// 3. It provides a place for batch-level concerns (limits, callbacks)
type Batch struct {
	// parser parses report files. A single Parser is safe for concurrent
	// use.
	parser *parser.Parser

	// runner executes checks on each parsed report.
	runner *Runner

	// concurrency is the maximum number of files processed at once.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a Batch.
type BatchOption func(*Batch)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *Batch) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of files validated at once.
// Default is 8 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *Batch) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatch creates a Batch over the given parser and runner.
func NewBatch(p *parser.Parser, r *Runner, opts ...BatchOption) *Batch {
	b := &Batch{
		parser:      p,
		runner:      r,
		concurrency: 8,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// FileResult pairs a parsed report with its validation outcome.
// Report is nil when the file could not be parsed; the parse failure is
// recorded on Validation.Error so a broken file is a result, not a batch
// abort.
type FileResult struct {
	// Path is the validated file.
	Path string

	// Report is the parsed document, nil on parse failure.
	Report *model.Report

	// Validation is the validation outcome. Never nil.
	Validation *model.ValidationReport
}

// ProcessFiles parses and validates the given files concurrently, returning
// results in input order. The optional callback is invoked as each file
// completes, from the worker goroutine, so it must be safe for concurrent
// use.
//
// The error return reports context cancellation; per-file failures are
// carried in the results.
func (b *Batch) ProcessFiles(ctx context.Context, paths []string, callback func(FileResult, int)) ([]FileResult, error) {
	b.logger.Info("starting batch validation",
		"total_files", len(paths),
		"concurrency", b.concurrency,
	)
	startTime := time.Now()

	results := make([]FileResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			results[i] = b.processOne(ctx, path)
			if callback != nil {
				callback(results[i], i)
			}
			return nil
		})
	}

	err := g.Wait()

	b.logger.Info("batch validation finished",
		"total_files", len(paths),
		"elapsed", time.Since(startTime).Round(time.Millisecond),
	)
	return results, err
}

// processOne parses and validates a single file.
func (b *Batch) processOne(ctx context.Context, path string) FileResult {
	report, err := b.parser.ParseFile(path)
	if err != nil {
		b.logger.Error("parse failed", "path", path, "error", err)
		return FileResult{
			Path: path,
			Validation: &model.ValidationReport{
				SourcePath:  path,
				ValidatedAt: time.Now(),
				Error:       err.Error(),
			},
		}
	}

	return FileResult{
		Path:       path,
		Report:     report,
		Validation: b.runner.Run(ctx, report),
	}
}
