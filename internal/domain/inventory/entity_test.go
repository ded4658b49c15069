package inventory

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestAvailable(t *testing.T) {
	inv, err := New("v1", 10, 3, t0)
	require.NoError(t, err)
	assert.Equal(t, 7, inv.Available())
}

func TestNewRejectsReservedOverQuantity(t *testing.T) {
	_, err := New("v1", 2, 3, t0)
	assert.ErrorIs(t, err, ErrInvalidReserved)
}

func TestReserveConsumesStock(t *testing.T) {
	inv, err := New("v1", 5, 0, t0)
	require.NoError(t, err)

	require.NoError(t, inv.Reserve(3, t0))
	assert.Equal(t, 2, inv.Available())
	assert.Equal(t, 3, inv.Reserved)
}

func TestReserveInsufficientStock(t *testing.T) {
	inv, err := New("v1", 1, 1, t0) // available 0
	require.NoError(t, err)

	err = inv.Reserve(1, t0)
	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 1, inv.Reserved) // unchanged
}

func TestReserveExactlyAvailable(t *testing.T) {
	inv, err := New("v1", 4, 1, t0)
	require.NoError(t, err)

	require.NoError(t, inv.Reserve(3, t0))
	assert.Equal(t, 0, inv.Available())
}

func TestReserveRejectsNonPositiveQty(t *testing.T) {
	inv, err := New("v1", 4, 0, t0)
	require.NoError(t, err)
	assert.ErrorIs(t, inv.Reserve(0, t0), ErrInvalidReserveQty)
}
