package test

import (
	"context"
	"sync"
	"time"

	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/session"
)

// StorefrontFacadeStub provides controllable behaviour for HTTP layer tests.
type StorefrontFacadeStub struct {
	RegisterFn   func(context.Context, model.Registration) (*model.User, error)
	LoginFn      func(context.Context, string, string) (*model.User, string, error)
	LogoutFn     func(context.Context, string) error
	ProfileFn    func(context.Context, int64) (*model.User, error)
	ResolveFn    func(context.Context, string) (*session.Session, error)
	SaveOrdersFn func(context.Context, []model.OrderItem) (int, error)
	OrdersFn     func(context.Context) ([]model.Order, error)
	HealthFn     func(context.Context) error
}

// Register returns a freshly created user by default.
func (s StorefrontFacadeStub) Register(ctx context.Context, reg model.Registration) (*model.User, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, reg)
	}
	return &model.User{ID: 1, Username: reg.Username, Role: model.NormalizeRole(reg.Role)}, nil
}

// Login returns a customer and a fixed token by default.
func (s StorefrontFacadeStub) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, username, password)
	}
	return &model.User{ID: 1, Username: username, Role: model.RoleCustomer}, "token", nil
}

// Logout succeeds unless overridden.
func (s StorefrontFacadeStub) Logout(ctx context.Context, token string) error {
	if s.LogoutFn != nil {
		return s.LogoutFn(ctx, token)
	}
	return nil
}

// Profile returns a user with the requested id.
func (s StorefrontFacadeStub) Profile(ctx context.Context, userID int64) (*model.User, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, userID)
	}
	return &model.User{ID: userID, Username: "user", Role: model.RoleCustomer}, nil
}

// ResolveSession reports no session unless overridden.
func (s StorefrontFacadeStub) ResolveSession(ctx context.Context, token string) (*session.Session, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, token)
	}
	return nil, session.ErrNoSession
}

// SaveOrders reports every item as inserted.
func (s StorefrontFacadeStub) SaveOrders(ctx context.Context, items []model.OrderItem) (int, error) {
	if s.SaveOrdersFn != nil {
		return s.SaveOrdersFn(ctx, items)
	}
	return len(items), nil
}

// Orders returns a single order by default.
func (s StorefrontFacadeStub) Orders(ctx context.Context) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx)
	}
	return []model.Order{{ID: 1, ItemName: "tea", Price: 2.5, Qty: 1, CreatedAt: time.Unix(0, 0).UTC()}}, nil
}

// Health reports a healthy backend unless overridden.
func (s StorefrontFacadeStub) Health(ctx context.Context) error {
	if s.HealthFn != nil {
		return s.HealthFn(ctx)
	}
	return nil
}

// SweeperStub counts sweep invocations.
type SweeperStub struct {
	Removed int
	Err     error

	mu    sync.Mutex
	calls int
}

// Sweep records the call and returns the configured result.
func (s *SweeperStub) Sweep(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.Removed, s.Err
}

// CallCount returns how many sweeps ran so far.
func (s *SweeperStub) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}
