// internal/domain/orderItem/entity.go
package orderitem

import (
	"errors"
	"strings"
	"time"

	"atelier/internal/domain/pricing"
)

var (
	ErrInvalidID        = errors.New("orderItem: invalid id")
	ErrInvalidOrderID   = errors.New("orderItem: invalid orderId")
	ErrInvalidProductID = errors.New("orderItem: invalid productId")
	ErrInvalidVariantID = errors.New("orderItem: invalid variantId")
	ErrInvalidQuantity  = errors.New("orderItem: invalid quantity")
	ErrInvalidPrice     = errors.New("orderItem: invalid price")
)

// OrderItem is one fully immutable order line. Quantity, unit price and line
// total are frozen at order-creation time. ProductName/Size/Color are a
// denormalized snapshot so historical orders survive catalog renames and
// deletes.
type OrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	VariantID string

	ProductName string
	Size        string
	Color       string

	Quantity   int
	UnitPrice  pricing.Cents
	TotalPrice pricing.Cents

	CreatedAt time.Time
}

func New(
	id string,
	orderID string,
	productID string,
	variantID string,
	productName string,
	size string,
	color string,
	quantity int,
	unitPrice pricing.Cents,
	createdAt time.Time,
) (OrderItem, error) {
	it := OrderItem{
		ID:          strings.TrimSpace(id),
		OrderID:     strings.TrimSpace(orderID),
		ProductID:   strings.TrimSpace(productID),
		VariantID:   strings.TrimSpace(variantID),
		ProductName: strings.TrimSpace(productName),
		Size:        strings.TrimSpace(size),
		Color:       strings.TrimSpace(color),
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  unitPrice * pricing.Cents(quantity),
		CreatedAt:   createdAt.UTC(),
	}
	if err := it.validate(); err != nil {
		return OrderItem{}, err
	}
	return it, nil
}

func (it OrderItem) validate() error {
	if it.ID == "" {
		return ErrInvalidID
	}
	if it.OrderID == "" {
		return ErrInvalidOrderID
	}
	if it.ProductID == "" {
		return ErrInvalidProductID
	}
	if it.VariantID == "" {
		return ErrInvalidVariantID
	}
	if it.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if it.UnitPrice < 0 || it.TotalPrice != it.UnitPrice*pricing.Cents(it.Quantity) {
		return ErrInvalidPrice
	}
	return nil
}
