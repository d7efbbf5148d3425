// models/models.go - Data models for TimeTrack
package models

import "time"

// AccessLevel is the authorization tier of a user, independent of
// their job title.
type AccessLevel string

const (
	AccessAdmin  AccessLevel = "admin"
	AccessMember AccessLevel = "member"
)

// UserStatus represents the onboarding/offboarding state
type UserStatus string

const (
	UserActive   UserStatus = "active"
	UserInactive UserStatus = "inactive"
	UserPending  UserStatus = "pending"
)

// ProjectStatus represents the current state of a project
type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectPending  ProjectStatus = "pending"
	ProjectFinished ProjectStatus = "finished"
	ProjectInactive ProjectStatus = "inactive"
)

// EntryStatus is the approval state of a logged time entry
type EntryStatus string

const (
	EntryDraft     EntryStatus = "draft"
	EntrySubmitted EntryStatus = "submitted"
	EntryApproved  EntryStatus = "approved"
	EntryRejected  EntryStatus = "rejected"
)

// User is a staffer. Title is the display job title; Access is the
// authorization tier (the two are distinct concepts).
type User struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Email      string      `json:"email"`
	Location   string      `json:"location"`
	Title      string      `json:"title"`
	Access     AccessLevel `json:"access"`
	Department string      `json:"department"`
	Status     UserStatus  `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Project is the main entity
type Project struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Client          string        `json:"client"`
	Status          ProjectStatus `json:"status"`
	LeadID          string        `json:"lead_id"`
	ManDays         float64       `json:"man_days"`
	CompletedDays   float64       `json:"completed_days"`
	Budget          float64       `json:"budget"`
	PeriodStart     time.Time     `json:"period_start"`
	PeriodEnd       time.Time     `json:"period_end"`
	Revenue         float64       `json:"revenue"`
	TargetMargin    float64       `json:"target_margin"` // fraction
	StripePaymentID string        `json:"stripe_payment_id"`
	CreatedAt       time.Time     `json:"created_at"`
}

// ProjectRole is a staffable role on a project with its planned size
// and billing rate.
type ProjectRole struct {
	ID         string  `json:"id"`
	ProjectID  string  `json:"project_id"`
	Role       string  `json:"role"`
	ManDays    float64 `json:"man_days"`
	HourlyRate float64 `json:"hourly_rate"`
}

// Allocation commits a user to a project role at a percentage of their
// working time. A nil EndDate means the commitment is open-ended.
type Allocation struct {
	ID         string     `json:"id"`
	ProjectID  string     `json:"project_id"`
	UserID     string     `json:"user_id"`
	RoleID     string     `json:"role_id"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	Percentage float64    `json:"percentage"` // fraction of working time, not capped at 1.0
}

// TimeEntry is one logged unit of work
type TimeEntry struct {
	ID          string      `json:"id"`
	ProjectID   string      `json:"project_id"`
	UserID      string      `json:"user_id"`
	Date        time.Time   `json:"date"`
	Hours       float64     `json:"hours"`
	Description string      `json:"description"`
	Status      EntryStatus `json:"status"`
	Tags        []string    `json:"tags"`
	Billable    bool        `json:"billable"`
	CreatedAt   time.Time   `json:"created_at"`
}

// CanTransitionTo reports whether an entry may move to next.
// Draft entries are submitted, submitted entries approved or rejected,
// and rejected entries may be resubmitted after editing.
func (s EntryStatus) CanTransitionTo(next EntryStatus) bool {
	switch s {
	case EntryDraft:
		return next == EntrySubmitted
	case EntrySubmitted:
		return next == EntryApproved || next == EntryRejected
	case EntryRejected:
		return next == EntryDraft || next == EntrySubmitted
	}
	return false
}
