// Package model defines the core data structures used throughout sotdarc.
//
// This package contains the following main types:
//   - Report: A parsed monthly report document with its ranking tables
//   - Month, Category, Rank, Delta: the value types the report format is built from
//   - ValidationReport: the outcome of running structural checks on a Report
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (parser, validate, archive, report) need to
// use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
