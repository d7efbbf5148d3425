// handlers/reports.go - Allocation report and hours analytics
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/noor-latif/timetrack/internal/models"
	"github.com/noor-latif/timetrack/internal/report"
)

var errInvalidMonth = errors.New("invalid month")

// AllocationReport runs the full pipeline for one year: bulk load,
// calendar, expansion, monthly totals. The pipeline is recomputed from
// scratch on every request.
func (h *Handler) AllocationReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year := parseYear(q.Get("year"))

	filters := report.Filters{
		ActiveOnly:  q.Get("active_only") == "true" || q.Get("active_only") == "1",
		ProjectIDs:  q["project_id"],
		Departments: q["department"],
		UserIDs:     q["user_id"],
	}

	snap, err := h.DB.LoadSnapshot()
	if err != nil {
		h.Log.Errorw("snapshot load failed", "err", err)
		respondError(w, http.StatusInternalServerError, "failed to load data")
		return
	}

	months := report.Months(year)
	exp := report.Expand(*snap, months, filters)
	if exp.SkippedAllocations > 0 {
		h.Log.Warnw("allocations skipped over dangling user references",
			"count", exp.SkippedAllocations, "year", year)
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"year":                year,
		"months":              months,
		"rows":                exp.Rows,
		"totals":              report.Totals(exp, months),
		"skipped_allocations": exp.SkippedAllocations,
	})
}

// HoursAnalytics groups logged hours by project, user, department or
// tag for the selected period.
func (h *Handler) HoursAnalytics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year := parseYear(q.Get("year"))
	month, err := parseMonth(q.Get("month"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid month")
		return
	}

	snap, err := h.DB.LoadSnapshot()
	if err != nil {
		h.Log.Errorw("snapshot load failed", "err", err)
		respondError(w, http.StatusInternalServerError, "failed to load data")
		return
	}

	var key report.KeyFunc
	groupBy := q.Get("group_by")
	if groupBy == "" {
		groupBy = "project"
	}
	switch groupBy {
	case "project":
		key = report.ByProject
	case "user":
		key = report.ByUser
	case "tag":
		key = report.ByTag
	case "department":
		key = report.ByDepartment(report.UserIndex(snap.Users))
	default:
		respondError(w, http.StatusBadRequest, "unknown group_by: "+groupBy)
		return
	}

	entries := filterEntries(snap.Entries, year, month, q["project_id"], q["user_id"])

	respondJSON(w, http.StatusOK, map[string]any{
		"year":     year,
		"month":    int(month),
		"group_by": groupBy,
		"buckets":  report.GroupHours(entries, key),
	})
}

// filterEntries narrows the raw entry list to the selected period and
// optional project/user id sets. month 0 means the whole year.
func filterEntries(entries []models.TimeEntry, year int, month time.Month, projectIDs, userIDs []string) []models.TimeEntry {
	projects := toSet(projectIDs)
	users := toSet(userIDs)

	var out []models.TimeEntry
	for _, e := range entries {
		if e.Date.Year() != year {
			continue
		}
		if month != 0 && e.Date.Month() != month {
			continue
		}
		if len(projects) > 0 && !projects[e.ProjectID] {
			continue
		}
		if len(users) > 0 && !users[e.UserID] {
			continue
		}
		out = append(out, e)
	}
	return out
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

func parseYear(s string) int {
	if y, err := strconv.Atoi(s); err == nil {
		return y
	}
	return time.Now().Year()
}

func parseMonth(s string) (time.Month, error) {
	if s == "" {
		return 0, nil
	}
	m, err := strconv.Atoi(s)
	if err != nil || m < 1 || m > 12 {
		return 0, errInvalidMonth
	}
	return time.Month(m), nil
}
