// store/interface.go - Store interface for testability
package store

import (
	"github.com/noor-latif/timetrack/internal/models"
	"github.com/noor-latif/timetrack/internal/report"
)

type Store interface {
	// Users
	CreateUser(u *models.User) error
	GetUser(id string) (*models.User, error)
	UpdateUser(u *models.User) error
	SetUserStatus(id string, status models.UserStatus) error
	ListUsers(search string) ([]models.User, error)

	// Projects
	CreateProject(p *models.Project) error
	GetProject(id string) (*models.Project, error)
	GetProjectByStripeID(stripeID string) (*models.Project, error)
	UpdateProject(p *models.Project) error
	SetProjectStatus(id string, status models.ProjectStatus) error
	RecordPayment(id string, amount float64, stripeID string) error
	DeleteProject(id string) error
	ListProjects(search string) ([]models.Project, error)

	// Project roles
	CreateRole(r *models.ProjectRole) error
	DeleteRole(id string) error
	ListRoles() ([]models.ProjectRole, error)
	ListRolesByProject(projectID string) ([]models.ProjectRole, error)

	// Allocations
	CreateAllocation(a *models.Allocation) error
	UpdateAllocation(a *models.Allocation) error
	DeleteAllocation(id string) error
	ListAllocations() ([]models.Allocation, error)

	// Time entries
	CreateTimeEntry(e *models.TimeEntry) error
	GetTimeEntry(id string) (*models.TimeEntry, error)
	UpdateTimeEntry(e *models.TimeEntry) error
	SetTimeEntryStatus(id string, status models.EntryStatus) error
	DeleteTimeEntry(id string) error
	ListTimeEntries() ([]models.TimeEntry, error)

	// Bulk select-alls for the reporting pipeline
	LoadSnapshot() (*report.Snapshot, error)
}
