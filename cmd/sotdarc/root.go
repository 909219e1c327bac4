// Package main provides the entry point for the sotdarc CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for sotdarc.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sotdarc",
		Short: "Toolkit for the monthly SOTD report archive",
		Long: `sotdarc parses and validates the pre-rendered monthly SOTD reports
(hardware and software), archives their ranking tables as snapshots, and
audits rank movement columns against archived history.

Reports are plain Markdown documents with ranked tables of razors, blades,
brushes, soaps, and users. sotdarc checks the structural invariants those
tables promise: descending shave counts, consistent tie groups, plausible
unique-user counts, and rank deltas that match the archived prior months.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewIngestCmd())
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
