// store/roles.go - Project role database operations
package store

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/noor-latif/timetrack/internal/models"
)

// roleScanner for DRY row scanning
type roleScanner struct {
	dest *models.ProjectRole
}

func (s roleScanner) Scan(rows *sql.Rows) error {
	return rows.Scan(&s.dest.ID, &s.dest.ProjectID, &s.dest.Role,
		&s.dest.ManDays, &s.dest.HourlyRate)
}

// CreateRole inserts a new project role
func (db *DB) CreateRole(r *models.ProjectRole) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	_, err := db.Exec(qRoleInsert, r.ID, r.ProjectID, r.Role, r.ManDays, r.HourlyRate)
	return err
}

// DeleteRole removes a project role
func (db *DB) DeleteRole(id string) error {
	_, err := db.Exec(qRoleDelete, id)
	return err
}

// ListRoles returns all roles across all projects
func (db *DB) ListRoles() ([]models.ProjectRole, error) {
	rows, err := db.Query(qRolesAll)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAll(rows, func() *models.ProjectRole { return &models.ProjectRole{} },
		func(r *models.ProjectRole) scanner { return roleScanner{r} })
}

// ListRolesByProject returns the roles of one project
func (db *DB) ListRolesByProject(projectID string) ([]models.ProjectRole, error) {
	rows, err := db.Query(qRolesByProject, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAll(rows, func() *models.ProjectRole { return &models.ProjectRole{} },
		func(r *models.ProjectRole) scanner { return roleScanner{r} })
}
