// internal/domain/product/repository_port.go
package product

import (
	"context"
	"errors"
)

// Repository is the read-side persistence port for Product.
// The storefront core never mutates products.
type Repository interface {
	// GetByID returns the product or ErrNotFound.
	GetByID(ctx context.Context, id string) (Product, error)

	// ListActive returns active products, optionally filtered by category
	// (empty categoryID means all).
	ListActive(ctx context.Context, categoryID string) ([]Product, error)
}

var ErrNotFound = errors.New("product: not found")
