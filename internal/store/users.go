// store/users.go - User database operations
package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/noor-latif/timetrack/internal/models"
)

// userScanner for DRY row scanning
type userScanner struct {
	dest *models.User
}

func (s userScanner) fields(created *string) []any {
	return []any{&s.dest.ID, &s.dest.Name, &s.dest.Email, &s.dest.Location,
		&s.dest.Title, &s.dest.Access, &s.dest.Department, &s.dest.Status, created}
}

func (s userScanner) Scan(rows *sql.Rows) error {
	var created string
	if err := rows.Scan(s.fields(&created)...); err != nil {
		return err
	}
	s.dest.CreatedAt = parseStamp(created)
	return nil
}

func (s userScanner) ScanRow(row *sql.Row) error {
	var created string
	if err := row.Scan(s.fields(&created)...); err != nil {
		return err
	}
	s.dest.CreatedAt = parseStamp(created)
	return nil
}

// CreateUser inserts a new user. New users start pending until an
// admin approves them.
func (db *DB) CreateUser(u *models.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Access == "" {
		u.Access = models.AccessMember
	}
	if u.Status == "" {
		u.Status = models.UserPending
	}
	u.CreatedAt = time.Now().UTC()

	_, err := db.Exec(qUserInsert, u.ID, u.Name, u.Email, u.Location,
		u.Title, u.Access, u.Department, u.Status, formatStamp(u.CreatedAt))
	return err
}

// GetUser fetches a user by ID
func (db *DB) GetUser(id string) (*models.User, error) {
	u := &models.User{}
	err := userScanner{u}.ScanRow(db.QueryRow(qUserByID, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return u, err
}

// UpdateUser updates all user fields
func (db *DB) UpdateUser(u *models.User) error {
	_, err := db.Exec(qUserUpdate, u.Name, u.Email, u.Location, u.Title,
		u.Access, u.Department, u.Status, u.ID)
	return err
}

// SetUserStatus updates only the lifecycle status
func (db *DB) SetUserStatus(id string, status models.UserStatus) error {
	_, err := db.Exec(qUserSetStatus, status, id)
	return err
}

// ListUsers returns all users, optionally filtered by search
func (db *DB) ListUsers(search string) ([]models.User, error) {
	var rows *sql.Rows
	var err error

	if search != "" {
		like := "%" + search + "%"
		rows, err = db.Query(qUsersSearch, like, like)
	} else {
		rows, err = db.Query(qUsersAll)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanAll(rows, func() *models.User { return &models.User{} },
		func(u *models.User) scanner { return userScanner{u} })
}
