package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages. Using errors.New() here rather than fmt.Errorf()
// because we don't need to include dynamic values in these messages.
var (
	// ErrNoInput is returned when no report file or directory is specified.
	ErrNoInput = errors.New("no input specified: provide a report file or directory")

	// ErrInvalidConcurrency is returned when the worker count is not positive.
	// Zero workers would mean no files get processed at all.
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting output formats: --json and --markdown cannot be used together")

	// ErrUnknownCheck is returned when a disabled-check name does not match
	// any registered validation check.
	ErrUnknownCheck = errors.New("unknown check name")
)
