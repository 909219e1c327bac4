package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/wetshaving/sotdarc/internal/config"
	"github.com/wetshaving/sotdarc/internal/log"
	"github.com/wetshaving/sotdarc/internal/parser"
	"github.com/wetshaving/sotdarc/internal/report"
	"github.com/wetshaving/sotdarc/internal/validate"
)

// NewValidateCmd creates the validate command.
func NewValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [report files or directories]",
		Short: "Validate the structure of monthly report documents",
		Long: `Validate parses monthly report documents and checks the structural
invariants their ranking tables promise:
- Shave counts descend down each table
- No row claims more unique users than shaves
- Tied ranks carry the "=" marker and identical counts
- Rank numbers follow competition ranking without gaps
- Table rows stay within the report's stated totals

Directories are walked for .md files.

Examples:
  # Validate a single report
  sotdarc validate reports/2025-05-hardware.md

  # Validate a whole archive directory
  sotdarc validate reports/

  # Output JSON for tool integration
  sotdarc validate --json reports/2025-05-hardware.md

  # Treat warnings as failures
  sotdarc validate --strict reports/

Configuration file (.sotdarc) example:
  aliases:
    Blades:
      GEM: Personna GEM PTFE
  disabledChecks:
    - observations`,
		Args: cobra.ArbitraryArgs,
		RunE: runValidateCmd,
	}

	addProcessingFlags(cmd)
	addOutputFlags(cmd)

	return cmd
}

// addProcessingFlags registers the flags shared by validate and ingest.
func addProcessingFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .sotdarc in current or home directory)")
	cmd.Flags().IntP("batch", "b", config.DefaultConcurrency,
		"Number of files processed in parallel")
	cmd.Flags().BoolP("strict", "s", false,
		"Treat warning findings as failures")
}

// addOutputFlags registers the output format flags.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON results (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown results (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write results to specified file path (creates directories if needed)")
}

// runValidateCmd executes the validate command.
func runValidateCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	files, err := collectInputFiles(cfg.Inputs)
	if err != nil {
		return err
	}

	results, err := processFiles(ctx, cfg, logger, files)
	if err != nil {
		return err
	}

	output, closer, err := openOutput(cfg)
	if err != nil {
		return err
	}
	defer closer()

	writer := newResultWriter(cfg, output)
	failed := 0
	for _, r := range results {
		if _, err := writer.Write(r.Validation); err != nil {
			return fmt.Errorf("failed to write result: %w", err)
		}
		if resultFailed(cfg, r) {
			failed++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d documents failed validation", failed, len(results))
	}
	return nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Inputs = args
	cfg.Verbose = getVerboseFlag(cmd)

	var err error

	cfg.Concurrency, err = cmd.Flags().GetInt("batch")
	if err != nil {
		return nil, err
	}

	cfg.Strict, err = cmd.Flags().GetBool("strict")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load aliases and check toggles from the config file.
	// If user explicitly specified a config file path, error if not found.
	// If no path specified, silently use empty config if no file found.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		cfg.FileConfig, err = config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	} else {
		cfg.FileConfig = &config.File{
			Aliases: make(map[string]map[string]string),
		}
	}

	// Output flags are only registered on commands that render results.
	if cmd.Flags().Lookup("json") != nil {
		cfg.JSONOutput, err = cmd.Flags().GetBool("json")
		if err != nil {
			return nil, err
		}
		cfg.MarkdownOutput, err = cmd.Flags().GetBool("markdown")
		if err != nil {
			return nil, err
		}
		cfg.OutputFile, err = cmd.Flags().GetString("output")
		if err != nil {
			return nil, err
		}
	}

	if cfg.FileConfig.ArchiveDir != "" {
		cfg.ArchiveDir = cfg.FileConfig.ArchiveDir
	}
	if cmd.Flags().Lookup("archive-dir") != nil {
		dir, err := cmd.Flags().GetString("archive-dir")
		if err != nil {
			return nil, err
		}
		if dir != "" {
			cfg.ArchiveDir = dir
		}
	}

	return cfg, nil
}

// collectInputFiles expands the input arguments into a sorted list of
// report files. Directories are walked recursively for .md files.
func collectInputFiles(inputs []string) ([]string, error) {
	var files []string

	for _, input := range inputs {
		info, err := os.Stat(input)
		if err != nil {
			return nil, fmt.Errorf("cannot read input %s: %w", input, err)
		}

		if !info.IsDir() {
			files = append(files, input)
			continue
		}

		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".md") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk directory %s: %w", input, err)
		}
	}

	if len(files) == 0 {
		return nil, fmt.Errorf("no report files found in %s", strings.Join(inputs, ", "))
	}

	sort.Strings(files)
	return files, nil
}

// processFiles parses and validates the given files with the configured
// parser, checks and concurrency.
func processFiles(ctx context.Context, cfg *config.Config, logger *slog.Logger, files []string) ([]validate.FileResult, error) {
	p := parser.New(
		parser.WithAliases(cfg.FileConfig.Aliases),
		parser.WithLogger(logger),
	)
	runner := validate.NewRunner(
		validate.WithLogger(logger),
		validate.WithDisabled(cfg.FileConfig.DisabledChecks),
	)
	batch := validate.NewBatch(p, runner,
		validate.WithConcurrency(cfg.Concurrency),
		validate.WithBatchLogger(logger),
	)

	return batch.ProcessFiles(ctx, files, nil)
}

// resultFailed decides whether a file counts as failed under the current
// strictness setting.
func resultFailed(cfg *config.Config, r validate.FileResult) bool {
	if r.Validation.HasErrors() {
		return true
	}
	return cfg.Strict && r.Validation.WarningCount > 0
}

// openOutput returns the destination writer for results, creating the
// output file and its directories when one was configured. The returned
// closer is a no-op for stdout.
func openOutput(cfg *config.Config) (io.Writer, func(), error) {
	if cfg.OutputFile == "" {
		return os.Stdout, func() {}, nil
	}

	dir := filepath.Dir(cfg.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// newResultWriter picks the output format requested by the config.
func newResultWriter(cfg *config.Config, output io.Writer) report.Writer {
	if cfg.JSONOutput {
		return report.NewFullJSONWriter(output, getVersion(), report.WithPrettyPrint())
	}
	if cfg.MarkdownOutput {
		return report.NewMarkdownWriter(output)
	}
	return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose))
}
