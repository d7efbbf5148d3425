// report/aggregate.go - Portfolio totals and grouped hour breakdowns
package report

import (
	"sort"
	"time"

	"github.com/noor-latif/timetrack/internal/models"
)

// MonthlyTotal sums every expanded row for one month. Allocated
// percentage is per-allocation and meaningless in aggregate, so it is
// not carried here.
type MonthlyTotal struct {
	Month             time.Time `json:"month"`
	CalculatedDays    float64   `json:"calculated_days"`
	CalculatedRevenue float64   `json:"calculated_revenue"`
	ActualHours       float64   `json:"actual_hours"`
	ActualRevenue     float64   `json:"actual_revenue"`
}

// Totals folds an expansion into portfolio-wide monthly totals, one
// entry per descriptor in months.
func Totals(exp Expansion, months []MonthDescriptor) []MonthlyTotal {
	totals := make([]MonthlyTotal, len(months))
	for i, md := range months {
		totals[i].Month = md.Month
	}
	for _, row := range exp.Rows {
		for i := range row.Months {
			if i >= len(totals) {
				break
			}
			cell := row.Months[i]
			totals[i].CalculatedDays += cell.CalculatedDays
			totals[i].CalculatedRevenue += cell.CalculatedRevenue
			totals[i].ActualHours += cell.ActualHours
			totals[i].ActualRevenue += cell.ActualRevenue
		}
	}
	return totals
}

// Bucket is one group in an hours breakdown.
type Bucket struct {
	Key        string  `json:"key"`
	Hours      float64 `json:"hours"`
	Percentage float64 `json:"percentage"` // share of total hours in the set
}

// KeyFunc maps a time entry to the buckets it belongs to. Returning
// multiple keys is allowed (tag grouping); returning none skips the entry.
type KeyFunc func(models.TimeEntry) []string

// GroupHours buckets logged hours by an arbitrary key, sorted by hours
// descending (ties keep first-seen order). The percentage denominator
// is the total hours of the whole entry set; when it is zero every
// bucket reports zero percent rather than NaN.
func GroupHours(entries []models.TimeEntry, key KeyFunc) []Bucket {
	var order []string
	sums := make(map[string]float64)
	var total float64

	for _, e := range entries {
		total += e.Hours
		for _, k := range key(e) {
			if _, seen := sums[k]; !seen {
				order = append(order, k)
			}
			sums[k] += e.Hours
		}
	}

	buckets := make([]Bucket, 0, len(order))
	for _, k := range order {
		b := Bucket{Key: k, Hours: sums[k]}
		if total > 0 {
			b.Percentage = sums[k] / total * 100
		}
		buckets = append(buckets, b)
	}
	sort.SliceStable(buckets, func(i, j int) bool {
		return buckets[i].Hours > buckets[j].Hours
	})
	return buckets
}

// ByProject groups by project id.
func ByProject(e models.TimeEntry) []string { return []string{e.ProjectID} }

// ByUser groups by user id.
func ByUser(e models.TimeEntry) []string { return []string{e.UserID} }

// ByTag groups by tag; one entry may land in several buckets, and an
// untagged entry lands in none.
func ByTag(e models.TimeEntry) []string { return e.Tags }

// ByDepartment groups by the department of the entry's user, resolved
// through the given index. Unknown users and users without a
// department fall into "Unassigned".
func ByDepartment(users map[string]models.User) KeyFunc {
	return func(e models.TimeEntry) []string {
		if u, ok := users[e.UserID]; ok && u.Department != "" {
			return []string{u.Department}
		}
		return []string{"Unassigned"}
	}
}
