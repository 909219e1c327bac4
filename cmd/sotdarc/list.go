package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wetshaving/sotdarc/internal/archive"
	"github.com/wetshaving/sotdarc/internal/config"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived snapshots or an entity's history",
		Long: `List displays the snapshots stored in the archive, or, with --table and
--entity, one entity's month-by-month trajectory through a ranking table.

Examples:
  # List all archived snapshots
  sotdarc list

  # List snapshots in a specific archive
  sotdarc list --archive-dir /var/lib/sotdarc

  # Show a razor's rank history
  sotdarc list --table Razors --entity "Blackland Blackbird"

  # JSON output for tool integration
  sotdarc list --json`,
		Args: cobra.NoArgs,
		RunE: runListCmd,
	}

	cmd.Flags().StringP("archive-dir", "a", "",
		"Archive directory (default: XDG data directory)")
	cmd.Flags().StringP("table", "t", "",
		"Ranking table for entity history (requires --entity)")
	cmd.Flags().StringP("entity", "e", "",
		"Entity name for history lookup (requires --table)")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON instead of a text table")

	return cmd
}

// resolveArchiveDir returns the archive directory from the --archive-dir
// flag, falling back to the config file and then the XDG data directory.
func resolveArchiveDir(cmd *cobra.Command) (string, error) {
	dir, err := cmd.Flags().GetString("archive-dir")
	if err != nil {
		return "", err
	}
	if dir != "" {
		return dir, nil
	}

	if path := config.FindConfigFile(""); path != "" {
		cf, err := config.LoadConfigFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		if cf.ArchiveDir != "" {
			return cf.ArchiveDir, nil
		}
	}

	return config.XDGDataDir(), nil
}

// runListCmd executes the list command.
func runListCmd(cmd *cobra.Command, _ []string) error {
	dir, err := resolveArchiveDir(cmd)
	if err != nil {
		return err
	}

	table, err := cmd.Flags().GetString("table")
	if err != nil {
		return err
	}
	entity, err := cmd.Flags().GetString("entity")
	if err != nil {
		return err
	}
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	if (table == "") != (entity == "") {
		return fmt.Errorf("--table and --entity must be used together")
	}

	opts := archive.DefaultOptions()
	opts.CreateIfNotExists = false
	arc, err := archive.Open(dir, opts)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w (run 'sotdarc ingest' first)", err)
	}
	defer arc.Close()

	ctx := context.Background()

	if table != "" {
		return listEntityHistory(ctx, cmd, arc, table, entity, jsonOutput)
	}
	return listSnapshots(ctx, cmd, arc, jsonOutput)
}

// listSnapshots prints all archived snapshots, oldest first.
func listSnapshots(ctx context.Context, cmd *cobra.Command, arc *archive.Archive, jsonOutput bool) error {
	snapshots, err := arc.ListReports(ctx)
	if err != nil {
		return fmt.Errorf("failed to list snapshots: %w", err)
	}

	out := cmd.OutOrStdout()

	if jsonOutput {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(snapshots)
	}

	if len(snapshots) == 0 {
		fmt.Fprintln(out, "No snapshots in the archive.")
		fmt.Fprintln(out, "\nUse 'sotdarc ingest <reports>' to store report snapshots.")
		return nil
	}

	fmt.Fprintf(out, "Archived snapshots (%d):\n\n", len(snapshots))
	fmt.Fprintf(out, "  %-8s  %-10s  %-20s  %s\n", "Period", "Category", "Ingested", "Findings")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 66))

	for _, s := range snapshots {
		fmt.Fprintf(out, "  %-8s  %-10s  %-20s  %s\n",
			s.Month.String(),
			s.Category,
			s.IngestedAt.Format("2006-01-02 15:04:05"),
			findingSummaryText(s.FindingSummary),
		)
	}

	fmt.Fprintln(out, "\nUse 'sotdarc compare <period> <category>' to audit rank deltas.")
	return nil
}

// findingSummaryText renders the stored finding counts for one snapshot.
func findingSummaryText(summary map[string]int) string {
	if len(summary) == 0 {
		return "-"
	}

	total := summary["error"] + summary["warning"] + summary["info"]
	if total == 0 {
		return "clean"
	}

	var parts []string
	for _, key := range []string{"error", "warning", "info"} {
		if summary[key] > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", summary[key], key))
		}
	}
	return strings.Join(parts, ", ")
}

// listEntityHistory prints one entity's records across archived months.
func listEntityHistory(ctx context.Context, cmd *cobra.Command, arc *archive.Archive, table, entity string, jsonOutput bool) error {
	records, err := arc.EntityHistory(ctx, table, entity)
	if err != nil {
		return fmt.Errorf("failed to query entity history: %w", err)
	}

	out := cmd.OutOrStdout()

	if jsonOutput {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintf(out, "No archived records for %q in table %q.\n", entity, table)
		fmt.Fprintln(out, "\nEntity names match the canonical (post-alias) form exactly.")
		return nil
	}

	fmt.Fprintf(out, "History for %q in %s (%d months):\n\n", entity, table, len(records))
	fmt.Fprintf(out, "  %-8s  %-6s  %-8s  %s\n", "Period", "Rank", "Shaves", "Unique Users")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 40))

	for _, rec := range records {
		fmt.Fprintf(out, "  %-8s  %-6s  %-8d  %d\n",
			rec.Month.String(),
			rec.Rank.String(),
			rec.Shaves,
			rec.UniqueUsers,
		)
	}

	return nil
}
