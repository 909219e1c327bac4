// Package archive provides SQLite-based storage for report snapshots.
//
// The archive is append-only in spirit: published reports are immutable
// historical snapshots, so the only write operations are adding a snapshot
// and replacing one that was re-ingested after a correction. Snapshot
// identity is the (year, month, category) triple.
//
// Besides the full report JSON, the archive keeps a relational index of
// every table row. That index is what makes cross-period queries cheap:
// an entity's rank trajectory across months, or the prior-period rank
// needed to audit a "Δ vs" column, is one indexed query instead of a walk
// over deserialized snapshots.
package archive
