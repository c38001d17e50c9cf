package domain

import (
	"errors"
	"time"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// Session wraps one Principal together with the bearer token issued for it.
// Both live in a single record so they can never drift apart: the store
// writes and deletes them in one operation.
type Session struct {
	ID        string    `json:"id"`
	Principal Principal `json:"principal"`
	// Token is the access token minted by the national-ID login path.
	// Empty for sessions opened by the demo sign-in and sign-up paths.
	Token     string    `json:"token,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry.
func (s Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}
