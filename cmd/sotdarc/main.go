// Package main provides the entry point for the sotdarc CLI.
//
// sotdarc is a toolkit for the monthly SOTD (shave of the day) report
// archive. It parses published report documents, validates their ranking
// tables, stores snapshots for cross-month queries, and audits the rank
// movement columns against archived history.
//
// Usage:
//
//	sotdarc validate <report.md>
//	sotdarc ingest <reports-dir>
//
// See --help for all available options.
package main

// main is the entry point for sotdarc.
func main() {
	Execute()
}
