// Package sessions binds HTTP requests to authenticated identities.
// Each browser holds an opaque token cookie; the token maps to a user id
// in a Store and expires independently of every other session.
package sessions

import (
	"context"
	"errors"
	"time"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// DefaultTTL is how long a session lives when no lifetime is configured.
const DefaultTTL = 24 * time.Hour

// Session is the server-side record behind a session cookie.
type Session struct {
	Token     string    `json:"token"`
	UserID    int       `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its lifetime at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store persists sessions by token.
type Store interface {
	Create(ctx context.Context, userID int) (*Session, error)
	Get(ctx context.Context, token string) (*Session, error)
	Delete(ctx context.Context, token string) error
}
