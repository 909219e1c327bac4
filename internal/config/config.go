package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultConcurrency is the number of files validated in parallel when
	// processing directories. Parsing is CPU-light and I/O-bound, so a
	// moderate fan-out wins without flooding the page cache.
	DefaultConcurrency = 8

	// AppName is the application name used for XDG directory paths.
	AppName = "sotdarc"
)

// Config holds all configuration options for sotdarc.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., ValidateConfig, ArchiveConfig) for simplicity. The number of
// options is manageable, and nesting would add complexity without
// significant benefit.
type Config struct {
	// Inputs is the list of report files or directories to process.
	// Directories are walked for .md files.
	Inputs []string

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// Concurrency is the number of files processed in parallel.
	Concurrency int

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .sotdarc in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// FileConfig holds aliases and check toggles loaded from the config
	// file. This is populated by LoadConfigFile.
	FileConfig *File

	// JSONOutput enables JSON output instead of human-readable format.
	// Mutually exclusive with MarkdownOutput.
	JSONOutput bool

	// MarkdownOutput enables Markdown output instead of human-readable
	// format. Mutually exclusive with JSONOutput.
	MarkdownOutput bool

	// OutputFile is the destination file path for results.
	// When set, results are written to this file instead of stdout.
	// Directories are created automatically if they don't exist.
	OutputFile string

	// ArchiveDir is the directory holding the snapshot archive database.
	// When empty, XDGDataDir() is used.
	ArchiveDir string

	// Strict treats warning findings as failures when deciding the exit
	// status.
	Strict bool
}

// NewConfig creates a new Config with default values.
// Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because some defaults are non-zero. This also serves as
// documentation of what the defaults are.
func NewConfig() *Config {
	return &Config{
		Concurrency: DefaultConcurrency,
	}
}

// XDGDataDir returns the XDG data directory for sotdarc.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/sotdarc
// On macOS: ~/Library/Application Support/sotdarc
// On Windows: %LOCALAPPDATA%\sotdarc
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for sotdarc.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// EffectiveArchiveDir returns the archive directory to use, falling back
// to the XDG data directory when none was configured.
func (c *Config) EffectiveArchiveDir() string {
	if c.ArchiveDir != "" {
		return c.ArchiveDir
	}
	return XDGDataDir()
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before any processing begins.
//
// We chose to return the first error found rather than collecting all
// errors because fixing one error often makes others irrelevant.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return ErrNoInput
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.JSONOutput && c.MarkdownOutput {
		return ErrConflictingReportFormats
	}

	return nil
}
