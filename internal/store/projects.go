// store/projects.go - Project database operations
package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/noor-latif/timetrack/internal/models"
)

// projectScanner for DRY row scanning
type projectScanner struct {
	dest *models.Project
}

func (s projectScanner) fields(start, end, created *string) []any {
	return []any{&s.dest.ID, &s.dest.Name, &s.dest.Client, &s.dest.Status,
		&s.dest.LeadID, &s.dest.ManDays, &s.dest.CompletedDays, &s.dest.Budget,
		start, end, &s.dest.Revenue, &s.dest.TargetMargin, &s.dest.StripePaymentID, created}
}

func (s projectScanner) coerce(start, end, created string) {
	s.dest.PeriodStart = parseDay(start)
	s.dest.PeriodEnd = parseDay(end)
	s.dest.CreatedAt = parseStamp(created)
}

func (s projectScanner) Scan(rows *sql.Rows) error {
	var start, end, created string
	if err := rows.Scan(s.fields(&start, &end, &created)...); err != nil {
		return err
	}
	s.coerce(start, end, created)
	return nil
}

func (s projectScanner) ScanRow(row *sql.Row) error {
	var start, end, created string
	if err := row.Scan(s.fields(&start, &end, &created)...); err != nil {
		return err
	}
	s.coerce(start, end, created)
	return nil
}

// CreateProject inserts a new project
func (db *DB) CreateProject(p *models.Project) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = models.ProjectPending
	}
	p.CreatedAt = time.Now().UTC()

	_, err := db.Exec(qProjectInsert, p.ID, p.Name, p.Client, p.Status, p.LeadID,
		p.ManDays, p.CompletedDays, p.Budget, formatDay(p.PeriodStart), formatDay(p.PeriodEnd),
		p.Revenue, p.TargetMargin, p.StripePaymentID, formatStamp(p.CreatedAt))
	return err
}

// GetProject fetches a project by ID
func (db *DB) GetProject(id string) (*models.Project, error) {
	p := &models.Project{}
	err := projectScanner{p}.ScanRow(db.QueryRow(qProjectByID, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

// GetProjectByStripeID fetches a project by Stripe payment ID
func (db *DB) GetProjectByStripeID(stripeID string) (*models.Project, error) {
	p := &models.Project{}
	err := projectScanner{p}.ScanRow(db.QueryRow(qProjectByStripeID, stripeID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

// UpdateProject updates all project fields
func (db *DB) UpdateProject(p *models.Project) error {
	_, err := db.Exec(qProjectUpdate, p.Name, p.Client, p.Status, p.LeadID,
		p.ManDays, p.CompletedDays, p.Budget, formatDay(p.PeriodStart), formatDay(p.PeriodEnd),
		p.Revenue, p.TargetMargin, p.StripePaymentID, p.ID)
	return err
}

// SetProjectStatus updates only the status
func (db *DB) SetProjectStatus(id string, status models.ProjectStatus) error {
	_, err := db.Exec(qProjectSetStatus, status, id)
	return err
}

// RecordPayment adds a received amount to the project revenue and
// remembers the payment id (used by webhooks)
func (db *DB) RecordPayment(id string, amount float64, stripeID string) error {
	_, err := db.Exec(qProjectRecordPayment, amount, stripeID, id)
	return err
}

// DeleteProject removes a project (cascades to roles and allocations)
func (db *DB) DeleteProject(id string) error {
	_, err := db.Exec(qProjectDelete, id)
	return err
}

// ListProjects returns all projects, optionally filtered by search
func (db *DB) ListProjects(search string) ([]models.Project, error) {
	var rows *sql.Rows
	var err error

	if search != "" {
		like := "%" + search + "%"
		rows, err = db.Query(qProjectsSearch, like, like)
	} else {
		rows, err = db.Query(qProjectsAll)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAll(rows, func() *models.Project { return &models.Project{} },
		func(p *models.Project) scanner { return projectScanner{p} })
}
