// store/allocations.go - Allocation database operations
package store

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/noor-latif/timetrack/internal/models"
)

// allocationScanner for DRY row scanning
type allocationScanner struct {
	dest *models.Allocation
}

func (s allocationScanner) Scan(rows *sql.Rows) error {
	var start string
	var end sql.NullString
	if err := rows.Scan(&s.dest.ID, &s.dest.ProjectID, &s.dest.UserID, &s.dest.RoleID,
		&start, &end, &s.dest.Percentage); err != nil {
		return err
	}
	s.dest.StartDate = parseDay(start)
	s.dest.EndDate = parseDayPtr(end)
	return nil
}

// CreateAllocation inserts a new allocation
func (db *DB) CreateAllocation(a *models.Allocation) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	_, err := db.Exec(qAllocationInsert, a.ID, a.ProjectID, a.UserID, a.RoleID,
		formatDay(a.StartDate), formatDayPtr(a.EndDate), a.Percentage)
	return err
}

// UpdateAllocation updates all allocation fields
func (db *DB) UpdateAllocation(a *models.Allocation) error {
	_, err := db.Exec(qAllocationUpdate, a.ProjectID, a.UserID, a.RoleID,
		formatDay(a.StartDate), formatDayPtr(a.EndDate), a.Percentage, a.ID)
	return err
}

// DeleteAllocation removes an allocation
func (db *DB) DeleteAllocation(id string) error {
	_, err := db.Exec(qAllocationDelete, id)
	return err
}

// ListAllocations returns all allocations
func (db *DB) ListAllocations() ([]models.Allocation, error) {
	rows, err := db.Query(qAllocationsAll)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAll(rows, func() *models.Allocation { return &models.Allocation{} },
		func(a *models.Allocation) scanner { return allocationScanner{a} })
}
