// report/expander.go - Allocation expander: planned vs actual per month
package report

import (
	"time"

	"github.com/noor-latif/timetrack/internal/models"
)

// HoursPerDay converts an hourly rate into a daily rate.
const HoursPerDay = 8

// Snapshot is a bulk-loaded, read-only view of the base tables.
// The expander never mutates it, so a snapshot can be expanded
// repeatedly with identical results.
type Snapshot struct {
	Users       []models.User
	Projects    []models.Project
	Roles       []models.ProjectRole
	Allocations []models.Allocation
	Entries     []models.TimeEntry
}

// Filters narrows which projects and staffers the expander includes.
// An empty id list means no restriction on that dimension.
type Filters struct {
	ActiveOnly  bool
	ProjectIDs  []string
	Departments []string
	UserIDs     []string
}

// MonthlyCell holds the planned and actual figures of one row for one month.
type MonthlyCell struct {
	CalculatedDays      float64 `json:"calculated_days"`
	CalculatedRevenue   float64 `json:"calculated_revenue"`
	ActualHours         float64 `json:"actual_hours"`
	AllocatedPercentage float64 `json:"allocated_percentage"` // whole-number percent
	ActualRevenue       float64 `json:"actual_revenue"`
}

// Row is one (project, role, staffed user) line, one cell per month.
type Row struct {
	Project    models.Project     `json:"project"`
	Role       models.ProjectRole `json:"role"`
	User       models.User        `json:"user"`
	Allocation models.Allocation  `json:"allocation"`
	Months     []MonthlyCell      `json:"months"`
}

// Expansion is the expander output. SkippedAllocations counts
// allocations dropped because their user no longer exists; callers
// should log it rather than let bad references disappear silently.
type Expansion struct {
	Rows               []Row `json:"rows"`
	SkippedAllocations int   `json:"skipped_allocations"`
}

// Expand produces one row per qualifying (project, role, allocation)
// combination with planned and actual figures for every month.
func Expand(snap Snapshot, months []MonthDescriptor, f Filters) Expansion {
	users := UserIndex(snap.Users)
	projectSet := toSet(f.ProjectIDs)
	deptSet := toSet(f.Departments)
	userSet := toSet(f.UserIDs)
	actuals := bucketHours(snap.Entries)

	var exp Expansion
	for _, p := range snap.Projects {
		if f.ActiveOnly && p.Status != models.ProjectActive {
			continue
		}
		if len(projectSet) > 0 && !projectSet[p.ID] {
			continue
		}
		for _, role := range snap.Roles {
			if role.ProjectID != p.ID {
				continue
			}
			for _, a := range snap.Allocations {
				if a.RoleID != role.ID {
					continue
				}
				u, ok := users[a.UserID]
				if !ok {
					exp.SkippedAllocations++
					continue
				}
				if len(deptSet) > 0 && !deptSet[u.Department] {
					continue
				}
				if len(userSet) > 0 && !userSet[u.ID] {
					continue
				}

				row := Row{Project: p, Role: role, User: u, Allocation: a,
					Months: make([]MonthlyCell, 0, len(months))}
				for _, md := range months {
					row.Months = append(row.Months, monthCell(a, role, md,
						actuals[actualKey{p.ID, u.ID, md.Month.Year(), md.Month.Month()}]))
				}
				exp.Rows = append(exp.Rows, row)
			}
		}
	}
	return exp
}

// monthCell computes one cell. Inactive months are all zeros.
func monthCell(a models.Allocation, role models.ProjectRole, md MonthDescriptor, actualHours float64) MonthlyCell {
	if !activeIn(a, md.Month) {
		return MonthlyCell{}
	}
	days := float64(md.WorkingDays) * a.Percentage
	dailyRate := role.HourlyRate * HoursPerDay
	return MonthlyCell{
		CalculatedDays:      days,
		CalculatedRevenue:   days * dailyRate,
		ActualHours:         actualHours,
		ActualRevenue:       actualHours * role.HourlyRate,
		AllocatedPercentage: a.Percentage * 100,
	}
}

// activeIn reports whether the allocation overlaps the month starting
// at first. An allocation without an end date runs forever.
func activeIn(a models.Allocation, first time.Time) bool {
	if a.StartDate.After(endOfMonth(first)) {
		return false
	}
	return a.EndDate == nil || !a.EndDate.Before(first)
}

// actualKey buckets logged hours by project, user and calendar month.
type actualKey struct {
	projectID string
	userID    string
	year      int
	month     time.Month
}

// bucketHours pre-sums time entries so the expander does one lookup per
// cell instead of rescanning the entry list. All entry statuses count.
func bucketHours(entries []models.TimeEntry) map[actualKey]float64 {
	sums := make(map[actualKey]float64, len(entries))
	for _, e := range entries {
		k := actualKey{e.ProjectID, e.UserID, e.Date.Year(), e.Date.Month()}
		sums[k] += e.Hours
	}
	return sums
}

// UserIndex maps users by id for reference resolution.
func UserIndex(users []models.User) map[string]models.User {
	idx := make(map[string]models.User, len(users))
	for _, u := range users {
		idx[u.ID] = u
	}
	return idx
}

func toSet(ids []string) map[string]bool {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
