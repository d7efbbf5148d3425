// store/entries.go - Time entry database operations
package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/noor-latif/timetrack/internal/models"
)

// entryScanner for DRY row scanning
type entryScanner struct {
	dest *models.TimeEntry
}

func (s entryScanner) fields(date, tags, created *string) []any {
	return []any{&s.dest.ID, &s.dest.ProjectID, &s.dest.UserID, date,
		&s.dest.Hours, &s.dest.Description, &s.dest.Status, tags, &s.dest.Billable, created}
}

func (s entryScanner) coerce(date, tags, created string) {
	s.dest.Date = parseDay(date)
	s.dest.Tags = splitTags(tags)
	s.dest.CreatedAt = parseStamp(created)
}

func (s entryScanner) Scan(rows *sql.Rows) error {
	var date, tags, created string
	if err := rows.Scan(s.fields(&date, &tags, &created)...); err != nil {
		return err
	}
	s.coerce(date, tags, created)
	return nil
}

func (s entryScanner) ScanRow(row *sql.Row) error {
	var date, tags, created string
	if err := row.Scan(s.fields(&date, &tags, &created)...); err != nil {
		return err
	}
	s.coerce(date, tags, created)
	return nil
}

// CreateTimeEntry inserts a new entry. Entries start as drafts.
func (db *DB) CreateTimeEntry(e *models.TimeEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Status == "" {
		e.Status = models.EntryDraft
	}
	e.CreatedAt = time.Now().UTC()

	_, err := db.Exec(qEntryInsert, e.ID, e.ProjectID, e.UserID, formatDay(e.Date),
		e.Hours, e.Description, e.Status, joinTags(e.Tags), e.Billable, formatStamp(e.CreatedAt))
	return err
}

// GetTimeEntry fetches an entry by ID
func (db *DB) GetTimeEntry(id string) (*models.TimeEntry, error) {
	e := &models.TimeEntry{}
	err := entryScanner{e}.ScanRow(db.QueryRow(qEntryByID, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return e, err
}

// UpdateTimeEntry updates all entry fields
func (db *DB) UpdateTimeEntry(e *models.TimeEntry) error {
	_, err := db.Exec(qEntryUpdate, e.ProjectID, e.UserID, formatDay(e.Date),
		e.Hours, e.Description, e.Status, joinTags(e.Tags), e.Billable, e.ID)
	return err
}

// SetTimeEntryStatus updates only the approval status
func (db *DB) SetTimeEntryStatus(id string, status models.EntryStatus) error {
	_, err := db.Exec(qEntrySetStatus, status, id)
	return err
}

// DeleteTimeEntry removes an entry
func (db *DB) DeleteTimeEntry(id string) error {
	_, err := db.Exec(qEntryDelete, id)
	return err
}

// ListTimeEntries returns all logged entries
func (db *DB) ListTimeEntries() ([]models.TimeEntry, error) {
	rows, err := db.Query(qEntriesAll)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAll(rows, func() *models.TimeEntry { return &models.TimeEntry{} },
		func(e *models.TimeEntry) scanner { return entryScanner{e} })
}
