package app

import (
	"context"
	"fmt"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/session"
	"github.com/polkiloo/storefront/internal/usecase"
)

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// StorefrontFacade composes use cases and sessions for the HTTP layer.
type StorefrontFacade struct {
	auth     *usecase.AuthUseCase
	orders   *usecase.OrderUseCase
	sessions *session.Manager
	health   HealthChecker
}

func NewStorefrontFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, sessions *session.Manager, health HealthChecker) *StorefrontFacade {
	return &StorefrontFacade{auth: auth, orders: orders, sessions: sessions, health: health}
}

func (f *StorefrontFacade) Register(ctx context.Context, reg model.Registration) (*model.User, error) {
	return f.auth.Register(ctx, reg)
}

// Login verifies credentials and opens a session. Returns the user and the signed session token.
func (f *StorefrontFacade) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := f.auth.Authenticate(ctx, username, password)
	if err != nil {
		return nil, "", err
	}
	token, _, err := f.sessions.Create(ctx, user.ID, user.Role)
	if err != nil {
		return nil, "", fmt.Errorf("create session: %w", err)
	}
	return user, token, nil
}

func (f *StorefrontFacade) Logout(ctx context.Context, token string) error {
	return f.sessions.Destroy(ctx, token)
}

func (f *StorefrontFacade) ResolveSession(ctx context.Context, token string) (*session.Session, error) {
	return f.sessions.Lookup(ctx, token)
}

func (f *StorefrontFacade) Profile(ctx context.Context, userID int64) (*model.User, error) {
	return f.auth.Profile(ctx, userID)
}

func (f *StorefrontFacade) SaveOrders(ctx context.Context, items []model.OrderItem) (int, error) {
	return f.orders.Save(ctx, items)
}

func (f *StorefrontFacade) Orders(ctx context.Context) ([]model.Order, error) {
	return f.orders.List(ctx)
}

func (f *StorefrontFacade) Health(ctx context.Context) error {
	if f.health == nil {
		return nil
	}
	return f.health.HealthCheck(ctx)
}
