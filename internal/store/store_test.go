package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noor-latif/timetrack/internal/models"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "timetrack.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUserRoundTrip(t *testing.T) {
	db := newTestDB(t)

	u := &models.User{Name: "Ulla Berg", Email: "ulla@example.com", Department: "Engineering", Title: "Backend Engineer"}
	require.NoError(t, db.CreateUser(u))
	assert.NotEmpty(t, u.ID)

	got, err := db.GetUser(u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Ulla Berg", got.Name)
	// defaults applied on create
	assert.Equal(t, models.UserPending, got.Status)
	assert.Equal(t, models.AccessMember, got.Access)
	assert.False(t, got.CreatedAt.IsZero())

	require.NoError(t, db.SetUserStatus(u.ID, models.UserActive))
	got, err = db.GetUser(u.ID)
	require.NoError(t, err)
	assert.Equal(t, models.UserActive, got.Status)

	missing, err := db.GetUser("nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserSearch(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.CreateUser(&models.User{Name: "Ulla Berg", Email: "ulla@example.com"}))
	require.NoError(t, db.CreateUser(&models.User{Name: "Omar Said", Email: "omar@example.com"}))

	users, err := db.ListUsers("omar")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Omar Said", users[0].Name)

	all, err := db.ListUsers("")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProjectDates(t *testing.T) {
	db := newTestDB(t)

	p := &models.Project{
		Name:         "Atlas",
		Client:       "Acme",
		Status:       models.ProjectActive,
		ManDays:      120,
		Budget:       96000,
		PeriodStart:  time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:    time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		TargetMargin: 0.35,
	}
	require.NoError(t, db.CreateProject(p))

	got, err := db.GetProject(p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	// stored as yyyy-mm-dd text, coerced back to dates
	assert.Equal(t, p.PeriodStart, got.PeriodStart)
	assert.Equal(t, p.PeriodEnd, got.PeriodEnd)
	assert.Equal(t, 0.35, got.TargetMargin)
}

func TestProjectPayment(t *testing.T) {
	db := newTestDB(t)

	p := &models.Project{Name: "Atlas", Status: models.ProjectActive}
	require.NoError(t, db.CreateProject(p))

	require.NoError(t, db.RecordPayment(p.ID, 1000, "pi_123"))
	require.NoError(t, db.RecordPayment(p.ID, 500, "pi_456"))

	got, err := db.GetProject(p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, got.Revenue)
	assert.Equal(t, "pi_456", got.StripePaymentID)

	byStripe, err := db.GetProjectByStripeID("pi_456")
	require.NoError(t, err)
	require.NotNil(t, byStripe)
	assert.Equal(t, p.ID, byStripe.ID)
}

func TestAllocationOpenEnded(t *testing.T) {
	db := newTestDB(t)

	p := &models.Project{Name: "Atlas"}
	require.NoError(t, db.CreateProject(p))

	open := &models.Allocation{
		ProjectID: p.ID, UserID: "u1", RoleID: "r1",
		StartDate:  time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		Percentage: 0.5,
	}
	require.NoError(t, db.CreateAllocation(open))

	end := time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC)
	closed := &models.Allocation{
		ProjectID: p.ID, UserID: "u2", RoleID: "r1",
		StartDate: time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   &end, Percentage: 1.0,
	}
	require.NoError(t, db.CreateAllocation(closed))

	allocs, err := db.ListAllocations()
	require.NoError(t, err)
	require.Len(t, allocs, 2)
	assert.Nil(t, allocs[0].EndDate)
	require.NotNil(t, allocs[1].EndDate)
	assert.Equal(t, end, *allocs[1].EndDate)
}

func TestTimeEntryTags(t *testing.T) {
	db := newTestDB(t)

	e := &models.TimeEntry{
		ProjectID: "p1", UserID: "u1",
		Date:  time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
		Hours: 7.5, Description: "api work",
		Tags: []string{"backend", "review"}, Billable: true,
	}
	require.NoError(t, db.CreateTimeEntry(e))
	assert.Equal(t, models.EntryDraft, e.Status)

	got, err := db.GetTimeEntry(e.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"backend", "review"}, got.Tags)
	assert.True(t, got.Billable)
	assert.Equal(t, 7.5, got.Hours)

	require.NoError(t, db.SetTimeEntryStatus(e.ID, models.EntrySubmitted))
	got, err = db.GetTimeEntry(e.ID)
	require.NoError(t, err)
	assert.Equal(t, models.EntrySubmitted, got.Status)
}

func TestDeleteProjectCascades(t *testing.T) {
	db := newTestDB(t)

	p := &models.Project{Name: "Atlas"}
	require.NoError(t, db.CreateProject(p))
	require.NoError(t, db.CreateRole(&models.ProjectRole{ProjectID: p.ID, Role: "Backend", HourlyRate: 40}))
	require.NoError(t, db.CreateAllocation(&models.Allocation{
		ProjectID: p.ID, UserID: "u1", RoleID: "r1",
		StartDate: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), Percentage: 1,
	}))

	require.NoError(t, db.DeleteProject(p.ID))

	roles, err := db.ListRoles()
	require.NoError(t, err)
	assert.Empty(t, roles)
	allocs, err := db.ListAllocations()
	require.NoError(t, err)
	assert.Empty(t, allocs)
}

func TestLoadSnapshot(t *testing.T) {
	db := newTestDB(t)

	u := &models.User{Name: "Ulla", Status: models.UserActive}
	require.NoError(t, db.CreateUser(u))
	p := &models.Project{Name: "Atlas", Status: models.ProjectActive}
	require.NoError(t, db.CreateProject(p))
	r := &models.ProjectRole{ProjectID: p.ID, Role: "Backend", HourlyRate: 40}
	require.NoError(t, db.CreateRole(r))
	require.NoError(t, db.CreateAllocation(&models.Allocation{
		ProjectID: p.ID, UserID: u.ID, RoleID: r.ID,
		StartDate: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), Percentage: 1,
	}))
	require.NoError(t, db.CreateTimeEntry(&models.TimeEntry{
		ProjectID: p.ID, UserID: u.ID,
		Date: time.Date(2025, time.March, 4, 0, 0, 0, 0, time.UTC), Hours: 8,
	}))

	snap, err := db.LoadSnapshot()
	require.NoError(t, err)
	assert.Len(t, snap.Users, 1)
	assert.Len(t, snap.Projects, 1)
	assert.Len(t, snap.Roles, 1)
	assert.Len(t, snap.Allocations, 1)
	assert.Len(t, snap.Entries, 1)
}
