package order

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atelier/internal/domain/pricing"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func validShipping() ShippingSnapshot {
	return ShippingSnapshot{
		FullName: "Mina Okabe",
		Email:    "mina@example.com",
		Phone:    "555-0101",
		Address:  "12 Rue de la Mode",
		City:     "Lyon",
		State:    "ARA",
		ZipCode:  "69001",
		Country:  "France",
	}
}

func validTotals() pricing.Totals {
	return pricing.Totals{Subtotal: 120_00, Shipping: 0, Tax: 9_60, Total: 129_60}
}

func TestNewOrderStartsConfirmed(t *testing.T) {
	o, err := New("o1", "u1", validShipping(), PaymentCard, validTotals(), t0)
	require.NoError(t, err)
	assert.Equal(t, StatusConfirmed, o.Status)
}

func TestNewOrderRequiresAddressFields(t *testing.T) {
	s := validShipping()
	s.ZipCode = "  "
	_, err := New("o1", "u1", s, PaymentCard, validTotals(), t0)
	assert.ErrorIs(t, err, ErrInvalidShippingAddress)

	// country is optional
	s = validShipping()
	s.Country = ""
	_, err = New("o1", "u1", s, PaymentCard, validTotals(), t0)
	assert.NoError(t, err)
}

func TestParsePaymentMethod(t *testing.T) {
	for _, raw := range []string{"card", "wallet", "bank_transfer"} {
		pm, err := ParsePaymentMethod(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, string(pm))
	}

	_, err := ParsePaymentMethod("cheque")
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

func TestNewOrderRejectsInconsistentTotals(t *testing.T) {
	bad := validTotals()
	bad.Total += 1
	_, err := New("o1", "u1", validShipping(), PaymentWallet, bad, t0)
	assert.ErrorIs(t, err, ErrInvalidTotals)
}

func TestStatusLifecycle(t *testing.T) {
	o, err := New("o1", "u1", validShipping(), PaymentCard, validTotals(), t0)
	require.NoError(t, err)

	require.NoError(t, o.Advance(StatusProcessing))
	require.NoError(t, o.Advance(StatusShipped))
	require.NoError(t, o.Advance(StatusDelivered))

	assert.ErrorIs(t, o.Advance(StatusProcessing), ErrInvalidStatus)
}

func TestCancellationAllowedUntilShipped(t *testing.T) {
	o, err := New("o1", "u1", validShipping(), PaymentCard, validTotals(), t0)
	require.NoError(t, err)

	require.NoError(t, o.Advance(StatusCancelled))

	o2, err := New("o2", "u1", validShipping(), PaymentCard, validTotals(), t0)
	require.NoError(t, err)
	require.NoError(t, o2.Advance(StatusProcessing))
	require.NoError(t, o2.Advance(StatusShipped))
	assert.ErrorIs(t, o2.Advance(StatusCancelled), ErrInvalidStatus)
}

func TestShippingSnapshotIsCopiedByValue(t *testing.T) {
	s := validShipping()
	o, err := New("o1", "u1", s, PaymentCard, validTotals(), t0)
	require.NoError(t, err)

	s.City = "Paris" // later edits to the source never reach the order
	assert.Equal(t, "Lyon", o.ShippingSnapshot.City)
}
