// internal/domain/order/entity.go
package order

import (
	"errors"
	"strings"
	"time"

	"atelier/internal/domain/pricing"
)

// ========================================
// Snapshot structs (stored in Order)
// ========================================

// ShippingSnapshot is the shipping address copied by value at checkout.
// Later address-book edits never alter historical orders.
type ShippingSnapshot struct {
	FullName string
	Email    string
	Phone    string
	Address  string
	City     string
	State    string
	ZipCode  string
	Country  string // optional
}

// ========================================
// Payment method
// ========================================

// PaymentMethod is a recorded label, not a processed instrument.
type PaymentMethod string

const (
	PaymentCard         PaymentMethod = "card"
	PaymentWallet       PaymentMethod = "wallet"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
)

func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	switch PaymentMethod(strings.TrimSpace(raw)) {
	case PaymentCard:
		return PaymentCard, nil
	case PaymentWallet:
		return PaymentWallet, nil
	case PaymentBankTransfer:
		return PaymentBankTransfer, nil
	}
	return "", ErrInvalidPaymentMethod
}

// ========================================
// Status lifecycle
// ========================================

type Status string

const (
	StatusConfirmed  Status = "confirmed"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// nextStatuses is the fixed lifecycle. Cancellation is allowed until the
// order ships.
var nextStatuses = map[Status][]Status{
	StatusConfirmed:  {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, n := range nextStatuses[s] {
		if n == next {
			return true
		}
	}
	return false
}

// ========================================
// Entity
// ========================================

// Order is created once per checkout and immutable afterwards except for
// Status. Totals are frozen at creation time.
type Order struct {
	ID     string
	UserID string

	Status           Status
	ShippingSnapshot ShippingSnapshot
	PaymentMethod    PaymentMethod

	Totals pricing.Totals

	CreatedAt time.Time
}

// ========================================
// Errors
// ========================================

var (
	ErrInvalidID              = errors.New("order: invalid id")
	ErrInvalidUserID          = errors.New("order: invalid userId")
	ErrInvalidShippingAddress = errors.New("order: invalid shippingSnapshot")
	ErrInvalidPaymentMethod   = errors.New("order: invalid paymentMethod")
	ErrInvalidTotals          = errors.New("order: invalid totals")
	ErrInvalidCreatedAt       = errors.New("order: invalid createdAt")
	ErrInvalidStatus          = errors.New("order: invalid status transition")
)

// ========================================
// Constructor
// ========================================

// New builds a confirmed order. All figures are the caller's frozen
// checkout-time computation.
func New(
	id string,
	userID string,
	shipping ShippingSnapshot,
	paymentMethod PaymentMethod,
	totals pricing.Totals,
	createdAt time.Time,
) (Order, error) {
	o := Order{
		ID:               strings.TrimSpace(id),
		UserID:           strings.TrimSpace(userID),
		Status:           StatusConfirmed,
		ShippingSnapshot: normalizeShippingSnapshot(shipping),
		PaymentMethod:    paymentMethod,
		Totals:           totals,
		CreatedAt:        createdAt.UTC(),
	}
	if err := o.validate(); err != nil {
		return Order{}, err
	}
	return o, nil
}

// ========================================
// Behavior
// ========================================

// Advance moves the order along its lifecycle; any other mutation of a
// persisted order is rejected at the repository layer.
func (o *Order) Advance(next Status) error {
	if !o.Status.CanTransitionTo(next) {
		return ErrInvalidStatus
	}
	o.Status = next
	return nil
}

// ========================================
// Validation
// ========================================

func (o Order) validate() error {
	if o.ID == "" {
		return ErrInvalidID
	}
	if o.UserID == "" {
		return ErrInvalidUserID
	}
	if err := ValidateShippingSnapshot(o.ShippingSnapshot); err != nil {
		return err
	}
	if _, err := ParsePaymentMethod(string(o.PaymentMethod)); err != nil {
		return err
	}
	if o.Totals.Subtotal < 0 || o.Totals.Shipping < 0 || o.Totals.Tax < 0 ||
		o.Totals.Total != o.Totals.Subtotal+o.Totals.Shipping+o.Totals.Tax {
		return ErrInvalidTotals
	}
	if o.CreatedAt.IsZero() {
		return ErrInvalidCreatedAt
	}
	return nil
}

// ValidateShippingSnapshot enforces the required checkout address fields.
// Country is optional.
func ValidateShippingSnapshot(s ShippingSnapshot) error {
	required := []string{s.FullName, s.Email, s.Phone, s.Address, s.City, s.State, s.ZipCode}
	for _, f := range required {
		if strings.TrimSpace(f) == "" {
			return ErrInvalidShippingAddress
		}
	}
	return nil
}

// ========================================
// Helpers
// ========================================

func normalizeShippingSnapshot(s ShippingSnapshot) ShippingSnapshot {
	s.FullName = strings.TrimSpace(s.FullName)
	s.Email = strings.TrimSpace(s.Email)
	s.Phone = strings.TrimSpace(s.Phone)
	s.Address = strings.TrimSpace(s.Address)
	s.City = strings.TrimSpace(s.City)
	s.State = strings.TrimSpace(s.State)
	s.ZipCode = strings.TrimSpace(s.ZipCode)
	s.Country = strings.TrimSpace(s.Country)
	return s
}
