package validate

import (
	"context"
	"log/slog"

	"github.com/wetshaving/sotdarc/internal/model"
)

// Runner executes a configured set of checks against a single report.
type Runner struct {
	// checks contains the ordered list of checks to execute.
	checks []Check

	// logger is used for structured logging during execution.
	logger *slog.Logger
}

// Option is a function that configures a Runner.
type Option func(*Runner)

// WithLogger sets a custom logger for the runner.
// If not set, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithChecks replaces the default check set.
func WithChecks(checks ...Check) Option {
	return func(r *Runner) {
		r.checks = checks
	}
}

// WithDisabled removes the named checks from the set. Unknown names are
// ignored so configuration files stay forward compatible with removed
// checks.
func WithDisabled(names []string) Option {
	return func(r *Runner) {
		if len(names) == 0 {
			return
		}
		disabled := make(map[string]bool, len(names))
		for _, n := range names {
			disabled[n] = true
		}
		kept := r.checks[:0]
		for _, c := range r.checks {
			if !disabled[c.Name()] {
				kept = append(kept, c)
			}
		}
		r.checks = kept
	}
}

// NewRunner creates a Runner with the default checks and the given options.
// Options are applied in order, so WithDisabled composes with WithChecks.
func NewRunner(opts ...Option) *Runner {
	r := &Runner{
		checks: DefaultChecks(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Checks returns the names of the checks the runner will execute.
func (r *Runner) Checks() []string {
	names := make([]string, len(r.checks))
	for i, c := range r.checks {
		names[i] = c.Name()
	}
	return names
}

// Run executes all checks against the report.
// It respects context cancellation between checks; individual checks are
// CPU-bound and fast, so mid-check cancellation is not needed.
func (r *Runner) Run(ctx context.Context, report *model.Report) *model.ValidationReport {
	result := model.NewValidationReport(report)

	for _, check := range r.checks {
		select {
		case <-ctx.Done():
			r.logger.Warn("validation cancelled",
				"check", check.Name(),
				"path", report.SourcePath,
				"reason", ctx.Err(),
			)
			result.Error = ctx.Err().Error()
			return result
		default:
		}

		before := result.TotalFindings()
		check.Do(report, result)

		r.logger.Debug("check completed",
			"check", check.Name(),
			"path", report.SourcePath,
			"findings", result.TotalFindings()-before,
		)
	}

	return result
}
