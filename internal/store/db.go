// store/db.go - Database setup and shared scan helpers
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Compile-time check that DB implements Store
var _ Store = (*DB)(nil)

type DB struct {
	*sql.DB
}

// New creates/opens the database and runs migrations
func New(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create dir: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{sqlDB}
	if err := db.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL DEFAULT '',
		location TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL DEFAULT '',
		access TEXT NOT NULL DEFAULT 'member' CHECK(access IN ('admin', 'member')),
		department TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('active', 'inactive', 'pending')),
		created_at TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS projects (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		client TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('active', 'pending', 'finished', 'inactive')),
		lead_id TEXT NOT NULL DEFAULT '',
		man_days REAL NOT NULL DEFAULT 0,
		completed_days REAL NOT NULL DEFAULT 0,
		budget REAL NOT NULL DEFAULT 0,
		period_start TEXT NOT NULL DEFAULT '',
		period_end TEXT NOT NULL DEFAULT '',
		revenue REAL NOT NULL DEFAULT 0,
		target_margin REAL NOT NULL DEFAULT 0,
		stripe_payment_id TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL DEFAULT ''
	);

	CREATE TABLE IF NOT EXISTS project_roles (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		role TEXT NOT NULL,
		man_days REAL NOT NULL DEFAULT 0,
		hourly_rate REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS allocations (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL,
		role_id TEXT NOT NULL,
		start_date TEXT NOT NULL,
		end_date TEXT,
		percentage REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS time_entries (
		id TEXT PRIMARY KEY,
		project_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		entry_date TEXT NOT NULL,
		hours REAL NOT NULL DEFAULT 0,
		description TEXT NOT NULL DEFAULT '',
		status TEXT NOT NULL DEFAULT 'draft' CHECK(status IN ('draft', 'submitted', 'approved', 'rejected')),
		tags TEXT NOT NULL DEFAULT '',
		billable INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_projects_status ON projects(status);
	CREATE INDEX IF NOT EXISTS idx_projects_stripe ON projects(stripe_payment_id);
	CREATE INDEX IF NOT EXISTS idx_roles_project ON project_roles(project_id);
	CREATE INDEX IF NOT EXISTS idx_allocations_project ON allocations(project_id);
	CREATE INDEX IF NOT EXISTS idx_entries_project_user ON time_entries(project_id, user_id);
	CREATE INDEX IF NOT EXISTS idx_entries_date ON time_entries(entry_date);
	`
	_, err := db.Exec(schema)
	return err
}

// Generic scanner interface
type scanner interface {
	Scan(rows *sql.Rows) error
}

// Generic scanAll helper - DRY for scanning rows into slices
func scanAll[T any](rows *sql.Rows, newFn func() *T, scannerFn func(*T) scanner) ([]T, error) {
	var results []T
	for rows.Next() {
		item := newFn()
		if err := scannerFn(item).Scan(rows); err != nil {
			return nil, err
		}
		results = append(results, *item)
	}
	return results, rows.Err()
}

// Date columns are stored as text and coerced on the way in and out;
// the external rows are loosely typed by contract.

const dayFormat = "2006-01-02"

// parseDay coerces a stored yyyy-mm-dd string into a UTC date.
// Empty or malformed values coerce to the zero time.
func parseDay(s string) time.Time {
	t, err := time.Parse(dayFormat, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

func formatDay(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dayFormat)
}

// parseDayPtr handles nullable date columns (open-ended allocations).
func parseDayPtr(s sql.NullString) *time.Time {
	if !s.Valid || strings.TrimSpace(s.String) == "" {
		return nil
	}
	t := parseDay(s.String)
	if t.IsZero() {
		return nil
	}
	return &t
}

func formatDayPtr(t *time.Time) any {
	if t == nil {
		return nil
	}
	return formatDay(*t)
}

// parseStamp coerces a stored timestamp, accepting both RFC3339 and
// the sqlite CURRENT_TIMESTAMP format.
func parseStamp(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t.UTC()
	}
	return time.Time{}
}

func formatStamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// Tags are persisted as a comma-joined list.

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func splitTags(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
