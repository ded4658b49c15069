package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	orderdom "atelier/internal/domain/order"
	"atelier/internal/domain/pricing"
)

func seedOrder(t *testing.T, orders *fakeOrderRepo, id, userID string) orderdom.Order {
	t.Helper()
	o, err := orderdom.New(id, userID, validAddress(), orderdom.PaymentCard,
		pricing.Totals{Subtotal: 60_00, Shipping: 9_99, Tax: 4_80, Total: 74_79}, testTime)
	require.NoError(t, err)
	created, err := orders.Create(context.Background(), o)
	require.NoError(t, err)
	return created
}

func TestAdvanceStatusFollowsLifecycle(t *testing.T) {
	orders := newFakeOrderRepo()
	uc := NewOrderUsecase(orders, newFakeItemRepo())

	seedOrder(t, orders, "o1", "u1")

	got, err := uc.AdvanceStatus(context.Background(), "o1", orderdom.StatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, orderdom.StatusProcessing, got.Status)

	got, err = uc.AdvanceStatus(context.Background(), "o1", orderdom.StatusShipped)
	require.NoError(t, err)
	assert.Equal(t, orderdom.StatusShipped, got.Status)

	// shipped orders can no longer be cancelled
	_, err = uc.AdvanceStatus(context.Background(), "o1", orderdom.StatusCancelled)
	assert.ErrorIs(t, err, orderdom.ErrInvalidStatus)

	// the rejected transition never reached the store
	stored, err := orders.GetByID(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, orderdom.StatusShipped, stored.Status)
}

func TestAdvanceStatusUnknownOrder(t *testing.T) {
	uc := NewOrderUsecase(newFakeOrderRepo(), newFakeItemRepo())

	_, err := uc.AdvanceStatus(context.Background(), "missing", orderdom.StatusProcessing)
	assert.ErrorIs(t, err, orderdom.ErrNotFound)

	_, err = uc.AdvanceStatus(context.Background(), "  ", orderdom.StatusProcessing)
	assert.ErrorIs(t, err, ErrOrderInvalidArgument)
}

func TestGetForUserEnforcesOwnership(t *testing.T) {
	orders := newFakeOrderRepo()
	uc := NewOrderUsecase(orders, newFakeItemRepo())

	seedOrder(t, orders, "o1", "u1")

	_, err := uc.GetForUser(context.Background(), "u2", "o1")
	assert.ErrorIs(t, err, ErrOrderForbidden)

	detail, err := uc.GetForUser(context.Background(), "u1", "o1")
	require.NoError(t, err)
	assert.Equal(t, "o1", detail.Order.ID)
}
