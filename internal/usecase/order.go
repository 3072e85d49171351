package usecase

import (
	"context"

	domainErrors "github.com/polkiloo/storefront/internal/domain/errors"
	"github.com/polkiloo/storefront/internal/domain/model"
	"github.com/polkiloo/storefront/internal/domain/repository"
)

// OrderUseCase encapsulates order recording.
type OrderUseCase struct {
	orders repository.OrderRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders}
}

// Save stores the batch atomically and returns the number of inserted rows.
func (u *OrderUseCase) Save(ctx context.Context, items []model.OrderItem) (int, error) {
	if len(items) == 0 {
		return 0, domainErrors.ErrInvalidInput
	}
	return u.orders.CreateBatch(ctx, items)
}

// List returns every order, newest first.
func (u *OrderUseCase) List(ctx context.Context) ([]model.Order, error) {
	return u.orders.List(ctx)
}
