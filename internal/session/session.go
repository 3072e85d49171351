package session

import (
	"context"
	"errors"
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
)

var (
	// ErrNoSession reports a missing, forged, unknown or expired session.
	ErrNoSession = errors.New("no active session")
	// ErrDestroyFailed is returned when the backing store could not drop a session.
	ErrDestroyFailed = errors.New("destroy session failed")
	// ErrNotFound is returned by stores for unknown ids.
	ErrNotFound = errors.New("session not found")
)

// Session is the server-side record referenced by the signed cookie.
type Session struct {
	ID        string     `json:"id"`
	UserID    int64      `json:"user_id"`
	Role      model.Role `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt time.Time  `json:"expires_at"`
}

// Expired reports whether the session lifetime has elapsed at now.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store persists sessions by id.
type Store interface {
	Save(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
	// Sweep removes sessions expired at now and returns how many were dropped.
	Sweep(ctx context.Context, now time.Time) (int, error)
}
