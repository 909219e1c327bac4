package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/wetshaving/sotdarc/internal/model"
)

// dbFileName is the archive database file name inside the archive
// directory.
const dbFileName = "sotdarc.db"

// Archive provides SQLite-based storage for report snapshots.
// It manages connection pooling and provides methods for snapshot and
// entity-history queries.
//
// Design decision: We use a single database file for all snapshots rather
// than one file per month. Cross-period queries (entity history, delta
// audits) are the whole point of archiving, and they need every snapshot
// in one place.
type Archive struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures Archive behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. This is recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default archive options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates an Archive in the specified directory.
// If CreateIfNotExists is true, the directory and database file are created.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dir string, opts Options) (*Archive, error) {
	dbPath := filepath.Join(dir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("archive not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check archive path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create archive directory: %w", err)
		}
	}

	// modernc.org/sqlite DSN: mode=rw prevents creating new files,
	// mode=rwc allows creation.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	// SQLite only supports one writer; the row index is small enough that
	// a single connection serves reads fine too.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	a := &Archive{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := a.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return a, nil
}

// Close closes the database connection.
func (a *Archive) Close() error {
	return a.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (a *Archive) createTables() error {
	schema := `
	-- Snapshots store one published report per (year, month, category)
	CREATE TABLE IF NOT EXISTS reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		year INTEGER NOT NULL,
		month INTEGER NOT NULL,
		category TEXT NOT NULL,
		source_path TEXT,
		ingested_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		report_json TEXT NOT NULL,
		finding_summary TEXT,
		UNIQUE(year, month, category)
	);

	CREATE INDEX IF NOT EXISTS idx_reports_period ON reports(year, month);

	-- Row index for entity-level and cross-period queries
	CREATE TABLE IF NOT EXISTS table_rows (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		report_id INTEGER NOT NULL,
		table_name TEXT NOT NULL,
		position INTEGER NOT NULL,
		rank INTEGER NOT NULL,
		tied INTEGER NOT NULL DEFAULT 0,
		entity TEXT NOT NULL,
		shaves INTEGER NOT NULL,
		unique_users INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_rows_report ON table_rows(report_id);
	CREATE INDEX IF NOT EXISTS idx_rows_entity ON table_rows(table_name, entity);
	`

	_, err := a.db.ExecContext(context.Background(), schema)
	return err
}

// SaveReport stores a snapshot, replacing any existing snapshot for the
// same (year, month, category). findingSummary is a severity-to-count map
// from validation; it may be nil.
func (a *Archive) SaveReport(ctx context.Context, report *model.Report, findingSummary map[string]int) error {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to serialize report: %w", err)
	}
	summaryJSON, _ := json.Marshal(findingSummary) //nolint:errcheck,errchkjson // simple map; Marshal won't fail

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	// Drop the previous snapshot for this identity, row index included.
	if _, err := tx.ExecContext(ctx, `
		DELETE FROM table_rows WHERE report_id IN (
			SELECT id FROM reports WHERE year = ? AND month = ? AND category = ?
		)`, report.Month.Year, int(report.Month.Month), report.Category.String()); err != nil {
		return fmt.Errorf("failed to clear row index: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM reports WHERE year = ? AND month = ? AND category = ?`,
		report.Month.Year, int(report.Month.Month), report.Category.String()); err != nil {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO reports (year, month, category, source_path, report_json, finding_summary)
		VALUES (?, ?, ?, ?, ?, ?)`,
		report.Month.Year,
		int(report.Month.Month),
		report.Category.String(),
		report.SourcePath,
		string(reportJSON),
		string(summaryJSON),
	)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	reportID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get snapshot id: %w", err)
	}

	for _, table := range report.Tables {
		for pos, row := range table.Rows {
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO table_rows (report_id, table_name, position, rank, tied, entity, shaves, unique_users)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				reportID,
				table.Name,
				pos,
				row.Rank.Position,
				boolToInt(row.Rank.Tied),
				row.Name,
				row.Shaves,
				row.UniqueUsers,
			); err != nil {
				return fmt.Errorf("failed to index row %q in %q: %w", row.Name, table.Name, err)
			}
		}
	}

	return tx.Commit()
}

// GetReport retrieves the snapshot for a period and category.
// Returns (nil, nil) when no snapshot exists.
func (a *Archive) GetReport(ctx context.Context, month model.Month, category model.Category) (*model.Report, error) {
	var reportJSON string
	err := a.db.QueryRowContext(ctx, `
		SELECT report_json FROM reports
		WHERE year = ? AND month = ? AND category = ?`,
		month.Year, int(month.Month), category.String(),
	).Scan(&reportJSON)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var report model.Report
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %w", err)
	}
	return &report, nil
}

// Snapshot is the archive-level metadata of one stored report.
// This is used for listings without loading the full report JSON.
type Snapshot struct {
	// ID is the snapshot's database identifier.
	ID int64

	// Month and Category identify the snapshot.
	Month    model.Month
	Category model.Category

	// SourcePath is the file the snapshot was ingested from.
	SourcePath string

	// IngestedAt is when the snapshot was stored.
	IngestedAt time.Time

	// FindingSummary contains validation finding counts by severity.
	FindingSummary map[string]int
}

// ListReports returns metadata for all archived snapshots, oldest first.
func (a *Archive) ListReports(ctx context.Context) ([]Snapshot, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, year, month, category, source_path, ingested_at, finding_summary
		FROM reports
		ORDER BY year, month, category`)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var (
			s           Snapshot
			year, month int
			category    string
			sourcePath  sql.NullString
			ingestedAt  string
			summaryJSON sql.NullString
		)
		if err := rows.Scan(&s.ID, &year, &month, &category, &sourcePath, &ingestedAt, &summaryJSON); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}

		s.Month = model.Month{Year: year, Month: time.Month(month)}
		s.Category = model.Category(category)
		s.SourcePath = sourcePath.String
		s.IngestedAt = parseTimestamp(ingestedAt)

		if summaryJSON.Valid && summaryJSON.String != "" {
			if err := json.Unmarshal([]byte(summaryJSON.String), &s.FindingSummary); err != nil {
				s.FindingSummary = nil
			}
		}
		snapshots = append(snapshots, s)
	}

	return snapshots, rows.Err()
}

// EntityRecord is one month of an entity's trajectory through a table.
type EntityRecord struct {
	// Month is the reporting period.
	Month model.Month

	// Category is the report the table belongs to.
	Category model.Category

	// Rank is the entity's position that month, with tie marker.
	Rank model.Rank

	// Shaves and UniqueUsers are the entity's counts that month.
	Shaves      int
	UniqueUsers int
}

// EntityHistory returns an entity's records in the named table across all
// archived months, oldest first. The entity name must be the canonical
// (post-alias) form; matching is exact.
func (a *Archive) EntityHistory(ctx context.Context, tableName, entity string) ([]EntityRecord, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT r.year, r.month, r.category, t.rank, t.tied, t.shaves, t.unique_users
		FROM table_rows t
		JOIN reports r ON r.id = t.report_id
		WHERE t.table_name = ? AND t.entity = ?
		ORDER BY r.year, r.month`,
		tableName, entity)
	if err != nil {
		return nil, fmt.Errorf("failed to query entity history: %w", err)
	}
	defer rows.Close()

	var records []EntityRecord
	for rows.Next() {
		var (
			rec         EntityRecord
			year, month int
			category    string
			tied        int
		)
		if err := rows.Scan(&year, &month, &category, &rec.Rank.Position, &tied, &rec.Shaves, &rec.UniqueUsers); err != nil {
			return nil, fmt.Errorf("failed to scan entity record: %w", err)
		}
		rec.Month = model.Month{Year: year, Month: time.Month(month)}
		rec.Category = model.Category(category)
		rec.Rank.Tied = tied != 0
		records = append(records, rec)
	}

	return records, rows.Err()
}

// boolToInt stores booleans as SQLite integers.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple
// formats. SQLite may return timestamps in different formats depending on
// configuration. If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
