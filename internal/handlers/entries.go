// handlers/entries.go - Time entry logging and approval workflow
package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/noor-latif/timetrack/internal/models"
)

// entryForm holds the loggable fields of a time entry
type entryForm struct {
	ProjectID   string   `json:"project_id"`
	UserID      string   `json:"user_id"`
	Date        string   `json:"date"`
	Hours       float64  `json:"hours"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Billable    bool     `json:"billable"`
}

func (f *entryForm) validate() (time.Time, string) {
	if f.ProjectID == "" || f.UserID == "" {
		return time.Time{}, "project_id and user_id are required"
	}
	if f.Hours < 0 {
		return time.Time{}, "hours must not be negative"
	}
	date, err := time.Parse(dayFormat, f.Date)
	if err != nil {
		return time.Time{}, "invalid date"
	}
	return date, ""
}

// CreateTimeEntry logs a new unit of work as a draft
func (h *Handler) CreateTimeEntry(w http.ResponseWriter, r *http.Request) {
	var form entryForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	date, msg := form.validate()
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	e := &models.TimeEntry{
		ProjectID:   form.ProjectID,
		UserID:      form.UserID,
		Date:        date,
		Hours:       form.Hours,
		Description: form.Description,
		Tags:        form.Tags,
		Billable:    form.Billable,
	}
	if err := h.DB.CreateTimeEntry(e); err != nil {
		h.Log.Errorw("create time entry failed", "err", err)
		respondError(w, http.StatusInternalServerError, "failed to create entry")
		return
	}
	respondJSON(w, http.StatusCreated, e)
}

// ListTimeEntries returns all logged entries
func (h *Handler) ListTimeEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.DB.ListTimeEntries()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list entries")
		return
	}
	respondJSON(w, http.StatusOK, entries)
}

// UpdateTimeEntry edits a logged entry. Editing a rejected entry moves
// it back to draft; approved entries are frozen.
func (h *Handler) UpdateTimeEntry(w http.ResponseWriter, r *http.Request) {
	e, err := h.DB.GetTimeEntry(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load entry")
		return
	}
	if e == nil {
		respondError(w, http.StatusNotFound, "entry not found")
		return
	}
	if e.Status == models.EntryApproved {
		respondError(w, http.StatusConflict, "approved entries cannot be edited")
		return
	}

	var form entryForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	date, msg := form.validate()
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	e.ProjectID = form.ProjectID
	e.UserID = form.UserID
	e.Date = date
	e.Hours = form.Hours
	e.Description = form.Description
	e.Tags = form.Tags
	e.Billable = form.Billable
	if e.Status == models.EntryRejected {
		e.Status = models.EntryDraft
	}

	if err := h.DB.UpdateTimeEntry(e); err != nil {
		h.Log.Errorw("update time entry failed", "err", err)
		respondError(w, http.StatusInternalServerError, "failed to update entry")
		return
	}
	respondJSON(w, http.StatusOK, e)
}

// DeleteTimeEntry removes an entry
func (h *Handler) DeleteTimeEntry(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.DeleteTimeEntry(chi.URLParam(r, "id")); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete entry")
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

// SubmitTimeEntry moves a draft (or rejected) entry into review
func (h *Handler) SubmitTimeEntry(w http.ResponseWriter, r *http.Request) {
	h.transitionEntry(w, r, models.EntrySubmitted)
}

// ApproveTimeEntry accepts a submitted entry
func (h *Handler) ApproveTimeEntry(w http.ResponseWriter, r *http.Request) {
	h.transitionEntry(w, r, models.EntryApproved)
}

// RejectTimeEntry sends a submitted entry back to its author
func (h *Handler) RejectTimeEntry(w http.ResponseWriter, r *http.Request) {
	h.transitionEntry(w, r, models.EntryRejected)
}

func (h *Handler) transitionEntry(w http.ResponseWriter, r *http.Request, next models.EntryStatus) {
	id := chi.URLParam(r, "id")
	e, err := h.DB.GetTimeEntry(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load entry")
		return
	}
	if e == nil {
		respondError(w, http.StatusNotFound, "entry not found")
		return
	}
	if !e.Status.CanTransitionTo(next) {
		respondError(w, http.StatusConflict, "cannot move entry from "+string(e.Status)+" to "+string(next))
		return
	}
	if err := h.DB.SetTimeEntryStatus(id, next); err != nil {
		h.Log.Errorw("entry transition failed", "err", err, "entry", id)
		respondError(w, http.StatusInternalServerError, "failed to update entry")
		return
	}
	e.Status = next
	respondJSON(w, http.StatusOK, e)
}
