package test

import (
	"context"
	"sync"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, nu model.NewUser) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[nu.Username]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{
		ID:           s.Next,
		Name:         nu.Name,
		Email:        nu.Email,
		Username:     nu.Username,
		Role:         nu.Role,
		PasswordHash: nu.PasswordHash,
	}
	s.Next++
	s.Users[nu.Username] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByUsername fetches user by username or returns not found.
func (s *UserRepositoryStub) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[username]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches the profile projection or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		projection := *user
		projection.PasswordHash = ""
		return &projection, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateBatchFn func(context.Context, []model.OrderItem) (int, error)
	ListFn        func(context.Context) ([]model.Order, error)

	Batches [][]model.OrderItem
	Orders  []model.Order
	mu      sync.Mutex
}

// CreateBatch records the batch and returns its size unless overridden.
func (s *OrderRepositoryStub) CreateBatch(ctx context.Context, items []model.OrderItem) (int, error) {
	s.mu.Lock()
	s.Batches = append(s.Batches, items)
	s.mu.Unlock()
	if s.CreateBatchFn != nil {
		return s.CreateBatchFn(ctx, items)
	}
	return len(items), nil
}

// List returns orders from configured slice.
func (s *OrderRepositoryStub) List(ctx context.Context) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return s.Orders, nil
}

var _ repository.UserRepository = (*UserRepositoryStub)(nil)
var _ repository.OrderRepository = (*OrderRepositoryStub)(nil)
