// internal/domain/cart/repository_port.go
package cart

import "context"

// Repository is the persistence port for Cart.
//
// Storage layout (Firestore):
// - collection: carts
// - docId: userId
// - fields: lines, createdAt, updatedAt, expiresAt (TTL field)
//
// Concurrency: Mutate must be a single conditional upsert over the whole
// document (read -> apply -> write inside one store transaction). Concurrent
// mutations for the same user must serialize there; the (user, variant)
// uniqueness invariant is then enforced by the domain merge alone.
type Repository interface {
	// GetByUserID returns (nil, nil) when no cart exists for the user.
	GetByUserID(ctx context.Context, userID string) (*Cart, error)

	// Mutate loads the user's cart (creating an empty one when absent),
	// applies fn, and persists the result atomically. fn runs on a cart the
	// caller may freely modify; returning an error aborts without writing.
	Mutate(ctx context.Context, userID string, fn func(c *Cart) error) (*Cart, error)

	// DeleteByUserID deletes the cart document (e.g. after checkout).
	DeleteByUserID(ctx context.Context, userID string) error
}
