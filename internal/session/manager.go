package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/pkg/auth"
)

// Observer is notified about session lifecycle transitions.
type Observer interface {
	SessionCreated()
	SessionDestroyed()
	SessionsExpired(n int)
}

// Manager issues, resolves and destroys sessions.
type Manager struct {
	store    Store
	signer   auth.Signer
	ttl      time.Duration
	observer Observer

	now   func() time.Time
	newID func() string
}

// NewManager builds a Manager with an absolute session lifetime of ttl.
func NewManager(store Store, signer auth.Signer, ttl time.Duration) *Manager {
	return &Manager{
		store:  store,
		signer: signer,
		ttl:    ttl,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// WithObserver attaches a lifecycle observer, typically prometheus metrics.
func (m *Manager) WithObserver(o Observer) *Manager {
	m.observer = o
	return m
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create stores a fresh session for the user and returns its signed token.
func (m *Manager) Create(ctx context.Context, userID int64, role model.Role) (string, *Session, error) {
	now := m.now()
	s := &Session{
		ID:        m.newID(),
		UserID:    userID,
		Role:      role,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	if err := m.store.Save(ctx, s); err != nil {
		return "", nil, fmt.Errorf("save session: %w", err)
	}
	if m.observer != nil {
		m.observer.SessionCreated()
	}
	return m.signer.Sign(s.ID), s, nil
}

// Lookup resolves a signed token into a live session.
func (m *Manager) Lookup(ctx context.Context, token string) (*Session, error) {
	id, ok := m.unsign(token)
	if !ok {
		return nil, ErrNoSession
	}

	s, err := m.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	if s.Expired(m.now()) {
		if err := m.store.Delete(ctx, id); err == nil && m.observer != nil {
			m.observer.SessionsExpired(1)
		}
		return nil, ErrNoSession
	}
	return s, nil
}

// Destroy removes the session behind token. Empty or forged tokens are ignored.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	id, ok := m.unsign(token)
	if !ok {
		return nil
	}
	if err := m.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: %w", ErrDestroyFailed, err)
	}
	if m.observer != nil {
		m.observer.SessionDestroyed()
	}
	return nil
}

// Sweep drops every session expired at the current time.
func (m *Manager) Sweep(ctx context.Context) (int, error) {
	n, err := m.store.Sweep(ctx, m.now())
	if err != nil {
		return n, fmt.Errorf("sweep sessions: %w", err)
	}
	if m.observer != nil {
		m.observer.SessionsExpired(n)
	}
	return n, nil
}

func (m *Manager) unsign(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	id, err := m.signer.Unsign(token)
	if err != nil || id == "" {
		return "", false
	}
	return id, true
}
