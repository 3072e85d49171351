package repository

import (
	"context"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	CreateBatch(ctx context.Context, items []model.OrderItem) (int, error)
	List(ctx context.Context) ([]model.Order, error)
}
