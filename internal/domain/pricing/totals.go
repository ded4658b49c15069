// internal/domain/pricing/totals.go
package pricing

// Cents is a money amount in minor currency units (1/100).
// All prices in the system are carried as Cents; display formatting is a
// caller concern.
type Cents int64

// Pricing policy constants.
//
// Shipping is free once the subtotal reaches the threshold (inclusive).
// Tax is a flat percentage of the subtotal, expressed in basis points.
const (
	FreeShippingThreshold Cents = 100_00 // 100.00
	ShippingFee           Cents = 9_99   // 9.99
	TaxRateBasisPoints          = 800    // 8%
)

// Line is one priced cart/order line: unit price x quantity.
type Line struct {
	UnitPrice Cents
	Quantity  int
}

// Total returns the line total (unit price x quantity).
func (l Line) Total() Cents {
	return l.UnitPrice * Cents(l.Quantity)
}

// Totals is the frozen figure set for a cart display or an order.
type Totals struct {
	Subtotal Cents
	Shipping Cents
	Tax      Cents
	Total    Cents
}

// ComputeTotals derives subtotal, shipping, tax and total from lines.
// Subtotal is additive over lines; shipping is 0 at or above the
// free-shipping threshold; tax is rounded half-up to the nearest cent.
func ComputeTotals(lines []Line) Totals {
	var subtotal Cents
	for _, l := range lines {
		subtotal += l.Total()
	}

	shipping := ShippingFee
	if subtotal >= FreeShippingThreshold {
		shipping = 0
	}
	if len(lines) == 0 {
		// empty cart: nothing to ship. A non-empty cart whose lines clamp
		// to zero still ships physical goods and pays the fee.
		shipping = 0
	}

	tax := taxOn(subtotal)

	return Totals{
		Subtotal: subtotal,
		Shipping: shipping,
		Tax:      tax,
		Total:    subtotal + shipping + tax,
	}
}

func taxOn(subtotal Cents) Cents {
	// round half-up in basis points
	return (subtotal*TaxRateBasisPoints + 5_000) / 10_000
}

// ClampNonNegative floors a price at zero. A variant adjustment may be
// negative, but an effective price is never presented below zero.
func ClampNonNegative(c Cents) Cents {
	if c < 0 {
		return 0
	}
	return c
}
