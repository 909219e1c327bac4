package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/wetshaving/sotdarc/internal/archive"
	"github.com/wetshaving/sotdarc/internal/config"
	"github.com/wetshaving/sotdarc/internal/log"
	"github.com/wetshaving/sotdarc/internal/model"
)

// NewCompareCmd creates the compare command.
// This command audits the rank movement columns of an archived snapshot
// against the archived prior-period snapshots they reference.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <period> <category>",
		Short: "Audit a snapshot's rank deltas against archived history",
		Long: `Compare recomputes every "Δ vs" cell of an archived snapshot from the
prior-period snapshots in the archive and reports cells that disagree.

Each ranking table names its comparison periods in the delta column
headers (for example "Δ vs Apr 2025"). For every row, the expected delta
follows from the entity's rank now versus its rank in that archived prior
snapshot; an entity absent from the prior snapshot expects "n/a".

Comparison periods missing from the archive are skipped, not failed:
their columns simply cannot be audited until the prior month is ingested.

Examples:
  # Audit the May 2025 hardware report
  sotdarc compare 2025-05 hardware

  # Audit the software report and emit JSON
  sotdarc compare --json 2025-05 software

  # Write a Markdown audit report to a file
  sotdarc compare --markdown -o audit.md 2025-05 hardware`,
		Args: cobra.ExactArgs(2),
		RunE: runCompareCmd,
	}

	cmd.Flags().StringP("archive-dir", "a", "",
		"Archive directory (default: XDG data directory)")
	addOutputFlags(cmd)

	return cmd
}

// runCompareCmd executes the compare command.
func runCompareCmd(cmd *cobra.Command, args []string) error {
	month, err := model.ParseMonth(args[0])
	if err != nil {
		return fmt.Errorf("invalid period %q: %w", args[0], err)
	}
	category, err := model.ParseCategory(args[1])
	if err != nil {
		return fmt.Errorf("invalid category %q: %w", args[1], err)
	}

	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)
	cfg.JSONOutput, err = cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	cfg.MarkdownOutput, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	cfg.OutputFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if cfg.JSONOutput && cfg.MarkdownOutput {
		return config.ErrConflictingReportFormats
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	dir, err := resolveArchiveDir(cmd)
	if err != nil {
		return err
	}

	opts := archive.DefaultOptions()
	opts.CreateIfNotExists = false
	arc, err := archive.Open(dir, opts)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w (run 'sotdarc ingest' first)", err)
	}
	defer arc.Close()

	ctx := context.Background()

	current, err := arc.GetReport(ctx, month, category)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}
	if current == nil {
		return fmt.Errorf("no archived snapshot for %s %s (run 'sotdarc ingest' first)", month, category)
	}

	result, err := auditDeltas(ctx, arc, current, logger)
	if err != nil {
		return err
	}

	output, closer, err := openOutput(cfg)
	if err != nil {
		return err
	}
	defer closer()

	if _, err := newResultWriter(cfg, output).Write(result); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}

	if result.HasErrors() {
		return fmt.Errorf("%d delta mismatch(es) in %s %s", result.ErrorCount, month, category)
	}
	return nil
}

// auditDeltas recomputes every delta cell of the snapshot from archived
// prior-period snapshots and records mismatches as findings. Comparison
// periods absent from the archive are skipped with a log entry.
func auditDeltas(ctx context.Context, arc *archive.Archive, current *model.Report, logger *slog.Logger) (*model.ValidationReport, error) {
	result := model.NewValidationReport(current)

	// Prior snapshots are shared across tables, so load each period once.
	priors := make(map[model.Month]*model.Report)
	prior := func(m model.Month) (*model.Report, error) {
		if p, ok := priors[m]; ok {
			return p, nil
		}
		p, err := arc.GetReport(ctx, m, current.Category)
		if err != nil {
			return nil, err
		}
		priors[m] = p
		return p, nil
	}

	for _, table := range current.Tables {
		for i, period := range table.DeltaPeriods {
			priorReport, err := prior(period)
			if err != nil {
				return nil, fmt.Errorf("failed to load prior snapshot %s: %w", period, err)
			}
			if priorReport == nil {
				logger.Warn("comparison period not in archive, column skipped",
					"table", table.Name,
					"period", period.String(),
				)
				continue
			}

			priorTable := priorReport.Table(table.Name)
			for _, row := range table.Rows {
				if i >= len(row.Deltas) {
					continue
				}

				var prevRank *model.Rank
				if priorTable != nil {
					if prevRow := priorTable.Find(row.Name); prevRow != nil {
						prevRank = &prevRow.Rank
					}
				}

				expected := model.DeltaBetween(row.Rank, prevRank)
				recorded := row.Deltas[i]
				if recorded == expected {
					continue
				}

				f := model.NewFinding("delta_mismatch",
					fmt.Sprintf("%s: %q records %s vs %s, archive says %s",
						table.Name, row.Name, recorded, period.ShortLabel(), expected))
				f.Table = table.Name
				f.Entity = row.Name
				f.Value = recorded.String()
				f.Line = row.Line
				result.Add(f)
			}
		}
	}

	return result, nil
}
