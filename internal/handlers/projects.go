// handlers/projects.go - Project and project-role endpoints
package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/noor-latif/timetrack/internal/models"
)

const dayFormat = "2006-01-02"

// projectForm holds the mutable project fields; dates travel as
// yyyy-mm-dd strings.
type projectForm struct {
	Name          string               `json:"name"`
	Client        string               `json:"client"`
	Status        models.ProjectStatus `json:"status"`
	LeadID        string               `json:"lead_id"`
	ManDays       float64              `json:"man_days"`
	CompletedDays float64              `json:"completed_days"`
	Budget        float64              `json:"budget"`
	PeriodStart   string               `json:"period_start"`
	PeriodEnd     string               `json:"period_end"`
	Revenue       float64              `json:"revenue"`
	TargetMargin  float64              `json:"target_margin"`
}

// validate parses the period dates and enforces period_end >= period_start.
func (f *projectForm) validate() (start, end time.Time, msg string) {
	if f.Name == "" {
		return start, end, "name is required"
	}
	var err error
	if f.PeriodStart != "" {
		if start, err = time.Parse(dayFormat, f.PeriodStart); err != nil {
			return start, end, "invalid period_start"
		}
	}
	if f.PeriodEnd != "" {
		if end, err = time.Parse(dayFormat, f.PeriodEnd); err != nil {
			return start, end, "invalid period_end"
		}
	}
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return start, end, "period_end before period_start"
	}
	return start, end, ""
}

func (f *projectForm) applyTo(p *models.Project, start, end time.Time) {
	p.Name = f.Name
	p.Client = f.Client
	if f.Status != "" {
		p.Status = f.Status
	}
	p.LeadID = f.LeadID
	p.ManDays = f.ManDays
	p.CompletedDays = f.CompletedDays
	p.Budget = f.Budget
	p.PeriodStart = start
	p.PeriodEnd = end
	p.Revenue = f.Revenue
	p.TargetMargin = f.TargetMargin
}

// CreateProject handles new project creation
func (h *Handler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var form projectForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	start, end, msg := form.validate()
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	p := &models.Project{}
	form.applyTo(p, start, end)
	if err := h.DB.CreateProject(p); err != nil {
		h.Log.Errorw("create project failed", "err", err)
		respondError(w, http.StatusInternalServerError, "failed to create project")
		return
	}
	respondJSON(w, http.StatusCreated, p)
}

// ListProjects returns all projects, optionally filtered by search
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.DB.ListProjects(r.URL.Query().Get("search"))
	if err != nil {
		h.Log.Errorw("list projects failed", "err", err)
		respondError(w, http.StatusInternalServerError, "failed to list projects")
		return
	}
	respondJSON(w, http.StatusOK, projects)
}

// GetProject returns one project
func (h *Handler) GetProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.DB.GetProject(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load project")
		return
	}
	if p == nil {
		respondError(w, http.StatusNotFound, "project not found")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// UpdateProject handles project updates
func (h *Handler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	p, err := h.DB.GetProject(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load project")
		return
	}
	if p == nil {
		respondError(w, http.StatusNotFound, "project not found")
		return
	}

	var form projectForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	start, end, msg := form.validate()
	if msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	form.applyTo(p, start, end)
	if err := h.DB.UpdateProject(p); err != nil {
		h.Log.Errorw("update project failed", "err", err)
		respondError(w, http.StatusInternalServerError, "failed to update project")
		return
	}
	respondJSON(w, http.StatusOK, p)
}

// SetProjectStatus moves a project between lifecycle states
func (h *Handler) SetProjectStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status models.ProjectStatus `json:"status"`
	}
	if err := decodeJSON(r, &body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	switch body.Status {
	case models.ProjectActive, models.ProjectPending, models.ProjectFinished, models.ProjectInactive:
	default:
		respondError(w, http.StatusBadRequest, "unknown status")
		return
	}

	id := chi.URLParam(r, "id")
	p, err := h.DB.GetProject(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load project")
		return
	}
	if p == nil {
		respondError(w, http.StatusNotFound, "project not found")
		return
	}
	if err := h.DB.SetProjectStatus(id, body.Status); err != nil {
		h.Log.Errorw("set project status failed", "err", err, "project", id)
		respondError(w, http.StatusInternalServerError, "failed to update status")
		return
	}
	p.Status = body.Status
	respondJSON(w, http.StatusOK, p)
}

// DeleteProject handles project deletion (cascades to roles and allocations)
func (h *Handler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.DeleteProject(chi.URLParam(r, "id")); err != nil {
		h.Log.Errorw("delete project failed", "err", err)
		respondError(w, http.StatusInternalServerError, "failed to delete project")
		return
	}
	respondJSON(w, http.StatusOK, nil)
}

// ListProjectRoles returns the roles of one project
func (h *Handler) ListProjectRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.DB.ListRolesByProject(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list roles")
		return
	}
	respondJSON(w, http.StatusOK, roles)
}

// CreateProjectRole adds a role to a project
func (h *Handler) CreateProjectRole(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "id")
	p, err := h.DB.GetProject(projectID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load project")
		return
	}
	if p == nil {
		respondError(w, http.StatusNotFound, "project not found")
		return
	}

	var form struct {
		Role       string  `json:"role"`
		ManDays    float64 `json:"man_days"`
		HourlyRate float64 `json:"hourly_rate"`
	}
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if form.Role == "" {
		respondError(w, http.StatusBadRequest, "role is required")
		return
	}

	role := &models.ProjectRole{
		ProjectID:  projectID,
		Role:       form.Role,
		ManDays:    form.ManDays,
		HourlyRate: form.HourlyRate,
	}
	if err := h.DB.CreateRole(role); err != nil {
		h.Log.Errorw("create role failed", "err", err)
		respondError(w, http.StatusInternalServerError, "failed to create role")
		return
	}
	respondJSON(w, http.StatusCreated, role)
}

// DeleteProjectRole removes a role
func (h *Handler) DeleteProjectRole(w http.ResponseWriter, r *http.Request) {
	if err := h.DB.DeleteRole(chi.URLParam(r, "roleID")); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to delete role")
		return
	}
	respondJSON(w, http.StatusOK, nil)
}
