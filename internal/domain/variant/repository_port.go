// internal/domain/variant/repository_port.go
package variant

import "context"

// Repository is the read-side persistence port for Variant.
type Repository interface {
	// GetByID returns the variant or ErrNotFound.
	GetByID(ctx context.Context, id string) (Variant, error)

	// ListByProductID returns the product's variants ordered by size,
	// optionally filtered to available ones.
	ListByProductID(ctx context.Context, productID string, availableOnly bool) ([]Variant, error)
}
