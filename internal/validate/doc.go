// Package validate runs structural checks against parsed report documents.
//
// # Architecture
//
// Each invariant of the report format is one Check. A Runner executes a
// configured set of checks against a single report and collects findings
// into a model.ValidationReport; a Batch validates many files concurrently.
//
// The checks cover the properties the report corpus guarantees (rank order
// follows descending shave counts, unique users never exceed shaves, tied
// ranks share identical counts) as well as conventions the corpus merely
// exhibits (competition ranking, summary totals bounding table rows), which
// are reported at Warning severity.
//
// Design decision: Checks are an interface rather than plain functions
// because it gives each check a stable Name() used both for logging and for
// the configuration file's disabled-checks list.
package validate
