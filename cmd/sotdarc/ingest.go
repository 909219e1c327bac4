package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/wetshaving/sotdarc/internal/archive"
	"github.com/wetshaving/sotdarc/internal/log"
	"github.com/wetshaving/sotdarc/internal/validate"
)

// NewIngestCmd creates the ingest command.
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest [report files or directories]",
		Short: "Validate reports and store snapshots in the archive",
		Long: `Ingest parses and validates monthly report documents, then stores each
clean document as a snapshot in the archive database. Snapshots power the
list and compare commands: entity history across months and delta audits
against archived prior periods.

A document that fails validation with errors is skipped unless --force is
given. Re-ingesting a period replaces its existing snapshot.

Examples:
  # Ingest a whole directory of reports
  sotdarc ingest reports/

  # Ingest into a specific archive directory
  sotdarc ingest --archive-dir /var/lib/sotdarc reports/

  # Store snapshots even when validation finds errors
  sotdarc ingest --force reports/2025-05-hardware.md`,
		Args: cobra.ArbitraryArgs,
		RunE: runIngestCmd,
	}

	addProcessingFlags(cmd)
	cmd.Flags().StringP("archive-dir", "a", "",
		"Archive directory (default: XDG data directory)")
	cmd.Flags().BoolP("force", "f", false,
		"Store snapshots even when validation finds errors")

	return cmd
}

// runIngestCmd executes the ingest command.
func runIngestCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
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

	arc, err := archive.Open(cfg.EffectiveArchiveDir(), archive.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer arc.Close()
	logger.Info("archive opened", "dir", cfg.EffectiveArchiveDir())

	return ingestResults(ctx, cmd, arc, results, force, logger)
}

// ingestResults stores the validated snapshots, reporting per-file outcome.
func ingestResults(ctx context.Context, cmd *cobra.Command, arc *archive.Archive, results []validate.FileResult, force bool, logger *slog.Logger) error {
	out := cmd.OutOrStdout()
	stored, skipped := 0, 0

	for _, r := range results {
		if r.Report == nil {
			fmt.Fprintf(out, "skip  %s: %s\n", r.Path, r.Validation.Error)
			skipped++
			continue
		}

		if r.Validation.HasErrors() && !force {
			fmt.Fprintf(out, "skip  %s: %d validation error(s) (use --force to store anyway)\n",
				r.Path, r.Validation.ErrorCount)
			skipped++
			continue
		}

		summary := map[string]int{
			"error":   r.Validation.ErrorCount,
			"warning": r.Validation.WarningCount,
			"info":    r.Validation.InfoCount,
		}
		if err := arc.SaveReport(ctx, r.Report, summary); err != nil {
			return fmt.Errorf("failed to store snapshot for %s: %w", r.Path, err)
		}

		logger.Info("snapshot stored",
			"path", r.Path,
			"month", r.Report.Month.String(),
			"category", r.Report.Category.String(),
		)
		fmt.Fprintf(out, "store %s: %s %s (%d findings)\n",
			r.Path, r.Report.Month.String(), r.Report.Category, r.Validation.TotalFindings())
		stored++
	}

	fmt.Fprintf(out, "\n%d snapshot(s) stored, %d skipped\n", stored, skipped)

	if skipped > 0 {
		return fmt.Errorf("%d of %d documents were not ingested", skipped, len(results))
	}
	return nil
}
