// handlers/users.go - User lifecycle endpoints
package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/noor-latif/timetrack/internal/models"
)

// userForm holds the mutable user fields
type userForm struct {
	Name       string             `json:"name"`
	Email      string             `json:"email"`
	Location   string             `json:"location"`
	Title      string             `json:"title"`
	Access     models.AccessLevel `json:"access"`
	Department string             `json:"department"`
}

func (f *userForm) applyTo(u *models.User) {
	u.Name = f.Name
	u.Email = f.Email
	u.Location = f.Location
	u.Title = f.Title
	if f.Access != "" {
		u.Access = f.Access
	}
	u.Department = f.Department
}

// CreateUser onboards a new user; they stay pending until approved.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var form userForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	if form.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	u := &models.User{}
	form.applyTo(u)
	if err := h.DB.CreateUser(u); err != nil {
		h.Log.Errorw("create user failed", "err", err)
		respondError(w, http.StatusInternalServerError, "failed to create user")
		return
	}
	respondJSON(w, http.StatusCreated, u)
}

// ListUsers returns all users, optionally filtered by search
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.DB.ListUsers(r.URL.Query().Get("search"))
	if err != nil {
		h.Log.Errorw("list users failed", "err", err)
		respondError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// GetUser returns one user
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.DB.GetUser(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	if u == nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	respondJSON(w, http.StatusOK, u)
}

// UpdateUser updates the mutable fields of a user
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.DB.GetUser(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	if u == nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}

	var form userForm
	if err := decodeJSON(r, &form); err != nil {
		respondError(w, http.StatusBadRequest, "invalid body")
		return
	}
	form.applyTo(u)
	if err := h.DB.UpdateUser(u); err != nil {
		h.Log.Errorw("update user failed", "err", err)
		respondError(w, http.StatusInternalServerError, "failed to update user")
		return
	}
	respondJSON(w, http.StatusOK, u)
}

// ApproveUser activates a pending user
func (h *Handler) ApproveUser(w http.ResponseWriter, r *http.Request) {
	h.setUserStatus(w, r, models.UserActive)
}

// DeactivateUser moves a user to inactive. Users are never deleted.
func (h *Handler) DeactivateUser(w http.ResponseWriter, r *http.Request) {
	h.setUserStatus(w, r, models.UserInactive)
}

func (h *Handler) setUserStatus(w http.ResponseWriter, r *http.Request, status models.UserStatus) {
	id := chi.URLParam(r, "id")
	u, err := h.DB.GetUser(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load user")
		return
	}
	if u == nil {
		respondError(w, http.StatusNotFound, "user not found")
		return
	}
	if err := h.DB.SetUserStatus(id, status); err != nil {
		h.Log.Errorw("set user status failed", "err", err, "user", id)
		respondError(w, http.StatusInternalServerError, "failed to update status")
		return
	}
	u.Status = status
	respondJSON(w, http.StatusOK, u)
}
