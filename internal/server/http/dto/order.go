package dto

import "time"

// OrderItemRequest is one line of a save-order batch.
type OrderItemRequest struct {
	Item  string  `json:"item"`
	Price float64 `json:"price"`
	Qty   int     `json:"qty"`
}

// SaveOrdersRequest wraps a batch of order lines.
type SaveOrdersRequest struct {
	Orders []OrderItemRequest `json:"orders"`
}

// SaveOrdersResponse reports how many rows were stored.
type SaveOrdersResponse struct {
	Message  string `json:"message"`
	Inserted int    `json:"inserted"`
}

// OrderResponse represents a stored order.
type OrderResponse struct {
	ID        int64     `json:"id"`
	ItemName  string    `json:"item_name"`
	Price     float64   `json:"price"`
	Qty       int       `json:"qty"`
	CreatedAt time.Time `json:"created_at"`
}
