package model

import "time"

// OrderItem is a single line of an incoming order batch.
type OrderItem struct {
	Item  string
	Price float64
	Qty   int
}

// Order describes a persisted order row. Rows are never modified.
type Order struct {
	ID        int64
	ItemName  string
	Price     float64
	Qty       int
	CreatedAt time.Time
}
