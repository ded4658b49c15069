// internal/domain/checkout/checkout.go
package checkout

import (
	"context"
	"errors"
	"fmt"

	"atelier/internal/domain/order"
	orderitem "atelier/internal/domain/orderItem"
)

// Stage is how far a checkout attempt has progressed.
// Validating has no side effects; every later stage is a remote write.
type Stage string

const (
	StageValidating     Stage = "validating"
	StagePlacingOrder   Stage = "placing_order"
	StageReservingStock Stage = "reserving_stock"
	StagePlacingItems   Stage = "placing_items"
	StageClearingCart   Stage = "clearing_cart"
	StageDone           Stage = "done"
)

// StageError tags a checkout failure with the stage reached and the order id
// when one was already created. The user sees a single generic failure; the
// tag is for reconciliation.
type StageError struct {
	Stage   Stage
	OrderID string
	Err     error
}

func (e *StageError) Error() string {
	if e.OrderID != "" {
		return fmt.Sprintf("checkout: stage %s failed (orderId=%s): %v", e.Stage, e.OrderID, e.Err)
	}
	return fmt.Sprintf("checkout: stage %s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// StageOf extracts the stage from err, if it carries one.
func StageOf(err error) (Stage, bool) {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage, true
	}
	return "", false
}

// Reservation is one conditional stock consumption within a placement.
type Reservation struct {
	VariantID string
	Qty       int
}

// Placement is the complete write set of one checkout attempt: the order,
// its items, the stock reservations, and the cart to clear. Order.ID doubles
// as the attempt's idempotency key; it is generated before any write.
type Placement struct {
	Order        order.Order
	Items        []orderitem.OrderItem
	Reservations []Reservation
	CartUserID   string
}

// Store persists a placement. Implementations backed by a transactional
// store commit all-or-nothing; step-wise implementations must persist an
// Intent first, advance it per completed write, never roll back on failure,
// and surface a *StageError. Either way a failed Place must never leave a
// cleared cart alongside a missing order.
type Store interface {
	Place(ctx context.Context, p Placement) error
}
