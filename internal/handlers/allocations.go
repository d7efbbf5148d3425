// handlers/allocations.go - Staffing allocation endpoints
package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/noor-latif/timetrack/internal/models"
)

// allocationForm holds the allocation fields; an empty end_date means
// the commitment is open-ended.
type allocationForm struct {
	ProjectID  string  `json:"project_id"`
	UserID     string  `json:"user_id"`
	RoleID     string  `json:"role_id"`
	StartDate  string  `json:"start_date"`
	EndDate    string  `json:"end_date"`
	Percentage float64 `json:"percentage"`
}

func (f *allocationForm) validate() (start time.Time, end *time.Time, msg string) {
	if f.ProjectID == "" || f.UserID == "" || f.RoleID == "" {
		return start, end, "project_id, user_id and role_id are required"
	}
	if f.Percentage < 0 {
		return start, end, "percentage must not be negative"
	}
	var err error
	if start, err = time.Parse(dayFormat, f.StartDate); err != nil {
		return start, end, "invalid start_date"
	}
	if f.EndDate != "" {
		e, err := time.Parse(dayFormat, f.EndDate)
		if err != nil {
			return start, end, "invalid end_date"
		}
		if e.Before(start) {
			return start, end, "end_date before start_date"
		}
		end = &e
	}
	return start, end, ""
}

// CreateAllocation commits a user to a project role
func (h *Handler) CreateAllocation(w http.ResponseWriter, r *http.Request) {
	var form allocationForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	start, end, msg := form.validate()
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	a := &models.Allocation{
		ProjectID:  form.ProjectID,
		UserID:     form.UserID,
		RoleID:     form.RoleID,
		StartDate:  start,
		EndDate:    end,
		Percentage: form.Percentage,
	}
	if err := h.DB.CreateAllocation(a); err != nil {
		h.Log.Errorw("create allocation failed", "err", err)
		respondError(w, http.StatusInternalServerError, "failed to create allocation")
		return
	}
	respondJSON(w, http.StatusCreated, a)
}

// ListAllocations returns all allocations
func (h *Handler) ListAllocations(w http.ResponseWriter, r *http.Request) {
	allocs, err := h.DB.ListAllocations()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list allocations")
		return
	}
	respondJSON(w, http.StatusOK, allocs)
}

// UpdateAllocation replaces an allocation's fields
func (h *Handler) UpdateAllocation(w http.ResponseWriter, r *http.Request) {
	var form allocationForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	start, end, msg := form.validate()
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	a := &models.Allocation{
		ID:         chi.URLParam(r, "id"),
		ProjectID:  form.ProjectID,
		UserID:     form.UserID,
		RoleID:     form.RoleID,
		StartDate:  start,
		EndDate:    end,
		Percentage: form.Percentage,
	}
	if err := h.DB.UpdateAllocation(a); err != nil {
		h.Log.Errorw("update allocation failed", "err", err)
		respondError(w, http.StatusInternalServerError, "failed to update allocation")
		return
	}
	respondJSON(w, http.StatusOK, a)
}

// DeleteAllocation removes an allocation
func (h *Handler) DeleteAllocation(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.DeleteAllocation(chi.URLParam(r, "id")); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete allocation")
		return
	}
	respondJSON(w, http.StatusOK, nil)
}
