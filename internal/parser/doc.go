// Package parser reads the monthly report document format.
//
// # Format
//
// A report document is GitHub-flavored Markdown with a fixed skeleton:
//
//   - A title line, e.g. "# Hardware Report - August 2025". The subject
//     before "Report" selects the category ("Hardware", "Software",
//     "Lather Log").
//   - Headline statistics near the top: "Total Shaves", "Unique Shavers"
//     and optionally average and median shaves per user.
//   - An "Observations" section, shipped as an unfilled placeholder and
//     populated by a later editorial pass.
//   - A "Notes & Caveats" section of free-text policy notes.
//   - Any number of ranking tables, each a "##" heading followed by a
//     pipe-delimited table with Rank, entity name, Shaves, Unique Users
//     and zero or more "Δ vs <period>" columns.
//
// The tie notation ("25="), the delta cell grammar ("=", "↑N", "↓N",
// "n/a") and the "n/a" sentinel are contractual: the parser accepts exactly
// those forms and nothing else, so drift from the published corpus surfaces
// as parse errors rather than silently producing wrong data.
//
// Design decision: We parse line by line rather than through a Markdown AST
// library because the format is a rigid skeleton, not general Markdown:
// line numbers in diagnostics matter more than inline formatting, and the
// only Markdown constructs that carry data are headings and pipe tables.
package parser
