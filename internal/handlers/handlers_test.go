package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noor-latif/timetrack/internal/config"
	"github.com/noor-latif/timetrack/internal/models"
	"github.com/noor-latif/timetrack/internal/store"
	"github.com/noor-latif/timetrack/internal/vacation"
)

type testEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestServer(t *testing.T, timeOff TimeOffSource) (*httptest.Server, *store.DB) {
	t.Helper()
	db, err := store.New(filepath.Join(t.TempDir(), "timetrack.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	h := New(db, timeOff, config.StripeConfig{}, zap.NewNop().Sugar())

	r := chi.NewRouter()
	r.Get("/reports/allocations", h.AllocationReport)
	r.Get("/analytics/hours", h.HoursAnalytics)
	r.Get("/vacations", h.Vacations)
	r.Post("/projects", h.CreateProject)
	r.Post("/entries", h.CreateTimeEntry)
	r.Put("/entries/{id}", h.UpdateTimeEntry)
	r.Post("/entries/{id}/submit", h.SubmitTimeEntry)
	r.Post("/entries/{id}/approve", h.ApproveTimeEntry)
	r.Post("/entries/{id}/reject", h.RejectTimeEntry)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, db
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, testEnvelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env testEnvelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp, env
}

func TestTimeEntryWorkflow(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, env := doJSON(t, http.MethodPost, srv.URL+"/entries", map[string]any{
		"project_id": "p1", "user_id": "u1", "date": "2025-03-03",
		"hours": 7.5, "tags": []string{"backend"}, "billable": true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var entry models.TimeEntry
	require.NoError(t, json.Unmarshal(env.Data, &entry))
	assert.Equal(t, models.EntryDraft, entry.Status)

	// draft cannot be approved directly
	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/entries/"+entry.ID+"/approve", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/entries/"+entry.ID+"/submit", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, env = doJSON(t, http.MethodPost, srv.URL+"/entries/"+entry.ID+"/approve", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &entry))
	assert.Equal(t, models.EntryApproved, entry.Status)

	// approved entries are frozen
	resp, _ = doJSON(t, http.MethodPut, srv.URL+"/entries/"+entry.ID, map[string]any{
		"project_id": "p1", "user_id": "u1", "date": "2025-03-03", "hours": 1,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestRejectedEntryEditableAgain(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	_, env := doJSON(t, http.MethodPost, srv.URL+"/entries", map[string]any{
		"project_id": "p1", "user_id": "u1", "date": "2025-03-03", "hours": 8,
	})
	var entry models.TimeEntry
	require.NoError(t, json.Unmarshal(env.Data, &entry))

	doJSON(t, http.MethodPost, srv.URL+"/entries/"+entry.ID+"/submit", nil)
	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/entries/"+entry.ID+"/reject", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// editing a rejected entry sends it back to draft
	resp, env = doJSON(t, http.MethodPut, srv.URL+"/entries/"+entry.ID, map[string]any{
		"project_id": "p1", "user_id": "u1", "date": "2025-03-04", "hours": 6,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(env.Data, &entry))
	assert.Equal(t, models.EntryDraft, entry.Status)
}

func TestProjectPeriodValidation(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, env := doJSON(t, http.MethodPost, srv.URL+"/projects", map[string]any{
		"name": "Atlas", "period_start": "2025-06-30", "period_end": "2025-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "period_end before period_start", env.Error)
}

func seedReportData(t *testing.T, db *store.DB) {
	t.Helper()
	u := &models.User{ID: "u1", Name: "Ulla", Department: "Engineering", Status: models.UserActive}
	require.NoError(t, db.CreateUser(u))
	p := &models.Project{ID: "p1", Name: "Atlas", Status: models.ProjectActive}
	require.NoError(t, db.CreateProject(p))
	role := &models.ProjectRole{ID: "r1", ProjectID: "p1", Role: "Backend", HourlyRate: 40}
	require.NoError(t, db.CreateRole(role))
	require.NoError(t, db.CreateAllocation(&models.Allocation{
		ProjectID: "p1", UserID: "u1", RoleID: "r1",
		StartDate: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), Percentage: 1,
	}))
	// dangling reference, skipped and reported
	require.NoError(t, db.CreateAllocation(&models.Allocation{
		ProjectID: "p1", UserID: "ghost", RoleID: "r1",
		StartDate: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), Percentage: 1,
	}))
	require.NoError(t, db.CreateTimeEntry(&models.TimeEntry{
		ProjectID: "p1", UserID: "u1",
		Date: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC),
		Hours: 160, Tags: []string{"backend"},
	}))
}

func TestAllocationReportEndpoint(t *testing.T) {
	srv, db := newTestServer(t, nil)
	seedReportData(t, db)

	resp, env := doJSON(t, http.MethodGet, srv.URL+"/reports/allocations?year=2025&active_only=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data struct {
		Year    int `json:"year"`
		Skipped int `json:"skipped_allocations"`
		Totals  []struct {
			CalculatedDays    float64 `json:"calculated_days"`
			CalculatedRevenue float64 `json:"calculated_revenue"`
			ActualHours       float64 `json:"actual_hours"`
			ActualRevenue     float64 `json:"actual_revenue"`
		} `json:"totals"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, 2025, data.Year)
	assert.Equal(t, 1, data.Skipped)
	require.Len(t, data.Totals, 12)

	march := data.Totals[time.March-1]
	assert.Equal(t, 21.0, march.CalculatedDays)
	assert.Equal(t, 6720.0, march.CalculatedRevenue)
	assert.Equal(t, 160.0, march.ActualHours)
	assert.Equal(t, 6400.0, march.ActualRevenue)
}

func TestHoursAnalyticsEndpoint(t *testing.T) {
	srv, db := newTestServer(t, nil)
	seedReportData(t, db)

	resp, env := doJSON(t, http.MethodGet, srv.URL+"/analytics/hours?year=2025&month=3&group_by=tag", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var data struct {
		GroupBy string `json:"group_by"`
		Buckets []struct {
			Key        string  `json:"key"`
			Hours      float64 `json:"hours"`
			Percentage float64 `json:"percentage"`
		} `json:"buckets"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "tag", data.GroupBy)
	require.Len(t, data.Buckets, 1)
	assert.Equal(t, "backend", data.Buckets[0].Key)
	assert.Equal(t, 160.0, data.Buckets[0].Hours)
	assert.Equal(t, 100.0, data.Buckets[0].Percentage)

	// unknown grouping is rejected
	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/analytics/hours?group_by=moon", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// fakeTimeOff implements TimeOffSource
type fakeTimeOff struct {
	records []vacation.TimeOff
	err     error
}

func (f *fakeTimeOff) TimeOffRecords(ctx context.Context, start, end time.Time) ([]vacation.TimeOff, error) {
	return f.records, f.err
}

func TestVacationsEndpoint(t *testing.T) {
	src := &fakeTimeOff{records: []vacation.TimeOff{{
		Employee: vacation.Employee{ID: "emp-1", Name: "Ulla"},
		Status:   "approved", Type: "vacation",
		StartDate: "2025-03-10", EndDate: "2025-03-14", Days: 5,
	}}}
	srv, _ := newTestServer(t, src)

	resp, env := doJSON(t, http.MethodGet, srv.URL+"/vacations?start=2025-03-01&end=2025-03-31", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var records []vacation.TimeOff
	require.NoError(t, json.Unmarshal(env.Data, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "Ulla", records[0].Employee.Name)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/vacations?start=bad&end=2025-03-31", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestVacationsNotConfigured(t *testing.T) {
	srv, _ := newTestServer(t, nil)

	resp, env := doJSON(t, http.MethodGet, srv.URL+"/vacations?start=2025-03-01&end=2025-03-31", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.False(t, env.Success)
}
