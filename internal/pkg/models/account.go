package models

import (
	"time"

	"github.com/google/uuid"
)

// Resident represents a registered household account in the waste
// collection program. Residents authenticate with an OTP sent to their
// registered contact.
type Resident struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Contact      string    `json:"contact" db:"contact" validate:"required"`
	Channel      Channel   `json:"channel" db:"channel"`
	FullName     string    `json:"full_name" db:"full_name"`
	Barangay     string    `json:"barangay" db:"barangay"`
	Password     string    `json:"password,omitempty" db:"-"` // inbound only, never stored
	PasswordHash string    `json:"-" db:"password_hash"`
	Verified     bool      `json:"verified" db:"verified"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Admin represents a municipal staff account. Admins authenticate with a
// username and password and carry a role for dashboard access control.
type Admin struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         string    `json:"role" db:"role"`
	Active       bool      `json:"active" db:"active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
