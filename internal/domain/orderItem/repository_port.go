package orderitem

import (
	"context"
	"errors"
)

// Repository is the persistence port for OrderItem. Rows are immutable after
// creation; there is deliberately no update or delete.
type Repository interface {
	// CreateMany persists all items of one order.
	CreateMany(ctx context.Context, items []OrderItem) error

	// ListByOrderID returns the order's items in creation order.
	ListByOrderID(ctx context.Context, orderID string) ([]OrderItem, error)
}

var ErrNotFound = errors.New("orderItem: not found")
