// internal/domain/variant/entity.go
package variant

import (
	"errors"
	"strings"
	"time"

	"atelier/internal/domain/pricing"
)

var (
	ErrInvalidID        = errors.New("variant: invalid id")
	ErrInvalidProductID = errors.New("variant: invalid productId")
	ErrInvalidSize      = errors.New("variant: invalid size")
	ErrInvalidColor     = errors.New("variant: invalid color")
	ErrInvalidSKU       = errors.New("variant: invalid sku")

	ErrNotFound = errors.New("variant: not found")
)

// Variant is one purchasable size/color combination of a product.
// SKU uniqueness across the system is enforced by the store.
type Variant struct {
	ID              string
	ProductID       string
	Size            string
	Color           string
	ColorHex        string // optional display value
	PriceAdjustment pricing.Cents
	Available       bool
	SKU             string
	CreatedAt       time.Time
}

func New(
	id string,
	productID string,
	size string,
	color string,
	colorHex string,
	priceAdjustment pricing.Cents,
	available bool,
	sku string,
	createdAt time.Time,
) (Variant, error) {
	v := Variant{
		ID:              strings.TrimSpace(id),
		ProductID:       strings.TrimSpace(productID),
		Size:            strings.TrimSpace(size),
		Color:           strings.TrimSpace(color),
		ColorHex:        strings.TrimSpace(colorHex),
		PriceAdjustment: priceAdjustment,
		Available:       available,
		SKU:             strings.TrimSpace(sku),
		CreatedAt:       createdAt.UTC(),
	}
	if err := v.validate(); err != nil {
		return Variant{}, err
	}
	return v, nil
}

func (v Variant) validate() error {
	if v.ID == "" {
		return ErrInvalidID
	}
	if v.ProductID == "" {
		return ErrInvalidProductID
	}
	if v.Size == "" {
		return ErrInvalidSize
	}
	if v.Color == "" {
		return ErrInvalidColor
	}
	if v.SKU == "" {
		return ErrInvalidSKU
	}
	return nil
}

// EffectivePrice is the product base price plus this variant's adjustment,
// floored at zero. Adjustments may be negative; a displayed price is not.
func (v Variant) EffectivePrice(basePrice pricing.Cents) pricing.Cents {
	return pricing.ClampNonNegative(basePrice + v.PriceAdjustment)
}

// Purchasable is the single authoritative purchasability predicate:
// the variant is flagged available and has stock left.
func (v Variant) Purchasable(availableStock int) bool {
	return v.Available && availableStock > 0
}
