package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestCart(t *testing.T) *Cart {
	t.Helper()
	c, err := NewCart("user-1", nil, t0)
	require.NoError(t, err)
	return c
}

func TestAddMergesDuplicateVariant(t *testing.T) {
	c := newTestCart(t)

	require.NoError(t, c.Add("p1", "v1", 2, t0))
	require.NoError(t, c.Add("p1", "v1", 3, t0.Add(time.Minute)))

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 5, c.Lines[0].Qty)
}

func TestAddSeparateVariantsKeepSeparateLines(t *testing.T) {
	c := newTestCart(t)

	require.NoError(t, c.Add("p1", "v1", 1, t0))
	require.NoError(t, c.Add("p1", "v2", 1, t0))

	assert.Len(t, c.Lines, 2)
}

func TestAddRejectsZeroQty(t *testing.T) {
	c := newTestCart(t)
	assert.ErrorIs(t, c.Add("p1", "v1", 0, t0), ErrInvalidQty)
	assert.True(t, c.IsEmpty())
}

func TestSetQtyZeroIsRejectedNotRemove(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.Add("p1", "v1", 4, t0))

	err := c.SetQty("v1", 0, t0.Add(time.Minute))
	assert.ErrorIs(t, err, ErrInvalidQty)

	// line and its prior quantity unchanged
	l, ok := c.Line("v1")
	require.True(t, ok)
	assert.Equal(t, 4, l.Qty)
}

func TestSetQtyMissingLine(t *testing.T) {
	c := newTestCart(t)
	assert.ErrorIs(t, c.SetQty("v9", 1, t0), ErrLineMissing)
}

func TestRemoveDeletesLine(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.Add("p1", "v1", 2, t0))

	require.NoError(t, c.Remove("v1", t0.Add(time.Minute)))
	assert.True(t, c.IsEmpty())

	// removing again is a no-op
	require.NoError(t, c.Remove("v1", t0.Add(2*time.Minute)))
}

func TestEmptyCartIsReEnterable(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.Add("p1", "v1", 1, t0))
	require.NoError(t, c.Remove("v1", t0))
	require.True(t, c.IsEmpty())

	require.NoError(t, c.Add("p2", "v2", 1, t0))
	assert.False(t, c.IsEmpty())
}

func TestConsumeAllSnapshotsAndClears(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.Add("p1", "v1", 2, t0))
	require.NoError(t, c.Add("p2", "v2", 1, t0))

	snap, err := c.ConsumeAll(t0.Add(time.Minute))
	require.NoError(t, err)

	assert.Len(t, snap, 2)
	assert.True(t, c.IsEmpty())
}

func TestNewCartNormalizesSeedLines(t *testing.T) {
	c, err := NewCart("user-1", []Line{
		{ProductID: "p1", VariantID: "v1", Qty: 1},
		{ProductID: "p1", VariantID: "v1", Qty: 2},
		{ProductID: "", VariantID: "junk", Qty: 1},
	}, t0)
	require.NoError(t, err)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 3, c.Lines[0].Qty)
}

func TestTouchRefreshesExpiry(t *testing.T) {
	c := newTestCart(t)
	later := t0.Add(48 * time.Hour)
	require.NoError(t, c.Add("p1", "v1", 1, later))
	assert.Equal(t, later.Add(DefaultCartTTL), c.ExpiresAt)
}
