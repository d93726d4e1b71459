package auth

import (
	"time"

	"github.com/arcadia-tracker/arcadia/internal/ownership"
)

// User represents an account that can sign in.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Class        ownership.Role
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor returns the request identity carried by tokens issued to u.
func (u User) Actor() ownership.Actor {
	return ownership.Actor{ID: u.ID, Role: u.Class}
}

// LoginResponse is returned by POST /api/auth/login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	UserID    int64     `json:"user_id"`
	Username  string    `json:"username"`
	Class     string    `json:"class"`
}
