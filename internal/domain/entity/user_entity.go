package entity

import (
	"time"
)

// User is an account able to sign in to the admin area.
// Passwords are stored as bcrypt hashes in Password field.
// Whether the user may manage content is decided by AdminProfile, not here.
type User struct {
	ID        string
	Email     string
	Password  string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
