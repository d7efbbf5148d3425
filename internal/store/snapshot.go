// store/snapshot.go - Bulk loading for the reporting pipeline
package store

import (
	"fmt"

	"github.com/noor-latif/timetrack/internal/report"
)

// LoadSnapshot bulk-fetches all five base tables in one call. The
// reporting pipeline works on the returned snapshot only; any failure
// fails the whole load.
func (db *DB) LoadSnapshot() (*report.Snapshot, error) {
	users, err := db.ListUsers("")
	if err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	projects, err := db.ListProjects("")
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	roles, err := db.ListRoles()
	if err != nil {
		return nil, fmt.Errorf("load roles: %w", err)
	}
	allocations, err := db.ListAllocations()
	if err != nil {
		return nil, fmt.Errorf("load allocations: %w", err)
	}
	entries, err := db.ListTimeEntries()
	if err != nil {
		return nil, fmt.Errorf("load time entries: %w", err)
	}

	return &report.Snapshot{
		Users:       users,
		Projects:    projects,
		Roles:       roles,
		Allocations: allocations,
		Entries:     entries,
	}, nil
}
