// internal/domain/inventory/entity.go
package inventory

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrNotFound          = errors.New("inventory: not found")
	ErrInvalidVariantID  = errors.New("inventory: invalid variantId")
	ErrInvalidQuantity   = errors.New("inventory: invalid quantity")
	ErrInvalidReserved   = errors.New("inventory: invalid reservedQuantity")
	ErrInvalidReserveQty = errors.New("inventory: reserve qty must be >= 1")

	// ErrInsufficientStock is the domain error for any attempt that would
	// drive available stock negative. Stores must never persist that state.
	ErrInsufficientStock = errors.New("inventory: insufficient stock")
)

// Inventory tracks stock for exactly one variant.
// Available stock = Quantity - Reserved; both counters are non-negative and
// Reserved never exceeds Quantity.
type Inventory struct {
	VariantID string
	Quantity  int
	Reserved  int
	UpdatedAt time.Time
}

func New(variantID string, quantity, reserved int, now time.Time) (Inventory, error) {
	inv := Inventory{
		VariantID: strings.TrimSpace(variantID),
		Quantity:  quantity,
		Reserved:  reserved,
		UpdatedAt: now.UTC(),
	}
	if err := inv.validate(); err != nil {
		return Inventory{}, err
	}
	return inv, nil
}

func (i Inventory) validate() error {
	if i.VariantID == "" {
		return ErrInvalidVariantID
	}
	if i.Quantity < 0 {
		return ErrInvalidQuantity
	}
	if i.Reserved < 0 || i.Reserved > i.Quantity {
		return ErrInvalidReserved
	}
	return nil
}

// Available returns quantity on hand minus reserved.
func (i Inventory) Available() int {
	return i.Quantity - i.Reserved
}

// Reserve consumes qty units of available stock by raising Reserved.
// Returns ErrInsufficientStock when the post-reserve available count would
// go negative; the caller decides whether that aborts the whole operation.
func (i *Inventory) Reserve(qty int, now time.Time) error {
	if i == nil {
		return ErrInvalidVariantID
	}
	if qty <= 0 {
		return ErrInvalidReserveQty
	}
	if i.Available() < qty {
		return ErrInsufficientStock
	}
	i.Reserved += qty
	i.UpdatedAt = now.UTC()
	return nil
}
