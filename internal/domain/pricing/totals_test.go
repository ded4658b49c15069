package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotalsSubtotalIsAdditive(t *testing.T) {
	base := []Line{{UnitPrice: 25_00, Quantity: 1}}
	before := ComputeTotals(base)

	withExtra := append(base, Line{UnitPrice: 12_50, Quantity: 3})
	after := ComputeTotals(withExtra)

	assert.Equal(t, before.Subtotal+12_50*3, after.Subtotal)
}

func TestComputeTotalsFreeShippingBoundary(t *testing.T) {
	// exactly at the threshold ships free
	atThreshold := ComputeTotals([]Line{{UnitPrice: 100_00, Quantity: 1}})
	assert.Equal(t, Cents(0), atThreshold.Shipping)

	// one cent under pays the flat fee
	under := ComputeTotals([]Line{{UnitPrice: 99_99, Quantity: 1}})
	assert.Equal(t, Cents(9_99), under.Shipping)
}

func TestComputeTotalsHappyPathScenario(t *testing.T) {
	// base 50.00 + adjustment 10.00, qty 2
	got := ComputeTotals([]Line{{UnitPrice: 60_00, Quantity: 2}})

	assert.Equal(t, Cents(120_00), got.Subtotal)
	assert.Equal(t, Cents(0), got.Shipping)
	assert.Equal(t, Cents(9_60), got.Tax)
	assert.Equal(t, Cents(129_60), got.Total)
}

func TestComputeTotalsEmptyCart(t *testing.T) {
	got := ComputeTotals(nil)
	assert.Equal(t, Totals{}, got)
}

func TestComputeTotalsZeroPricedLineStillShips(t *testing.T) {
	// a fully clamped line prices at 0 but is still a physical item
	got := ComputeTotals([]Line{{UnitPrice: 0, Quantity: 1}})

	assert.Equal(t, Cents(0), got.Subtotal)
	assert.Equal(t, Cents(9_99), got.Shipping)
	assert.Equal(t, Cents(9_99), got.Total)
}

func TestComputeTotalsTaxRounding(t *testing.T) {
	// 99.99 * 8% = 7.9992 -> rounds to 8.00
	got := ComputeTotals([]Line{{UnitPrice: 99_99, Quantity: 1}})
	assert.Equal(t, Cents(8_00), got.Tax)
}

func TestClampNonNegative(t *testing.T) {
	assert.Equal(t, Cents(0), ClampNonNegative(-500))
	assert.Equal(t, Cents(500), ClampNonNegative(500))
}
