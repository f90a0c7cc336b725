package models

import "time"

// Roles assignable to a user. Registration always yields a customer; the
// single admin account is seeded when the record store is first initialized.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// User captures application-facing fields for a registered identity. The
// password hash serializes into the persisted blob but is never returned to
// API callers; handlers respond with the dto view instead.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"password_hash,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin reports whether the user holds administrative privileges.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
