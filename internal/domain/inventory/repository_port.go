// internal/domain/inventory/repository_port.go
package inventory

import "context"

// Repository is the persistence port for Inventory.
//
// Reserve is the required conditional-decrement capability: implementations
// must apply "reserved += qty only if quantity - reserved >= qty" as a single
// store-side conditional operation (Firestore transaction, SQL conditional
// UPDATE), never as a read followed by a separate write. Two concurrent
// reservations for the last unit must not both succeed.
type Repository interface {
	// GetByVariantID returns the record or ErrNotFound.
	GetByVariantID(ctx context.Context, variantID string) (Inventory, error)

	// Reserve conditionally consumes qty units of available stock.
	// Returns ErrInsufficientStock when available < qty, ErrNotFound when
	// no record exists for the variant.
	Reserve(ctx context.Context, variantID string, qty int) error
}
