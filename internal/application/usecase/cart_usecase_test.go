package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "atelier/internal/domain/cart"
	invdom "atelier/internal/domain/inventory"
	"atelier/internal/domain/pricing"
	proddom "atelier/internal/domain/product"
	vardom "atelier/internal/domain/variant"
)

var testTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testCatalog(t *testing.T) (*fakeProductRepo, *fakeVariantRepo, *fakeInventoryRepo) {
	t.Helper()

	p, err := proddom.New("p1", "Wool Coat", "Maison K", "", 50_00, "cat1", true, nil, testTime)
	require.NoError(t, err)

	v1, err := vardom.New("v1", "p1", "M", "black", "#000", 10_00, true, "SKU-1", testTime)
	require.NoError(t, err)
	v2, err := vardom.New("v2", "p1", "M", "white", "#fff", 0, false, "SKU-2", testTime)
	require.NoError(t, err)

	i1, err := invdom.New("v1", 5, 0, testTime)
	require.NoError(t, err)
	i2, err := invdom.New("v2", 1, 1, testTime) // available 0
	require.NoError(t, err)

	return &fakeProductRepo{products: map[string]proddom.Product{"p1": p}},
		&fakeVariantRepo{variants: map[string]vardom.Variant{"v1": v1, "v2": v2}},
		&fakeInventoryRepo{stock: map[string]invdom.Inventory{"v1": i1, "v2": i2}}
}

func newTestCartUsecase(t *testing.T) (*CartUsecase, *fakeCartRepo) {
	t.Helper()
	products, variants, inventories := testCatalog(t)
	carts := newFakeCartRepo(func() time.Time { return testTime })
	uc := NewCartUsecaseWithClock(carts, products, variants, inventories, fixedClock{t: testTime})
	return uc, carts
}

func TestAddItemCreatesPricedLine(t *testing.T) {
	uc, _ := newTestCartUsecase(t)

	view, err := uc.AddItem(context.Background(), "u1", "p1", "v1", 2)
	require.NoError(t, err)

	require.Len(t, view.Lines, 1)
	l := view.Lines[0]
	assert.Equal(t, "Wool Coat", l.ProductName)
	assert.Equal(t, pricing.Cents(60_00), l.UnitPrice) // base 50 + adj 10
	assert.Equal(t, pricing.Cents(120_00), l.LineTotal)

	// scenario totals: subtotal 120.00, free shipping, 8% tax
	assert.Equal(t, pricing.Cents(120_00), view.Totals.Subtotal)
	assert.Equal(t, pricing.Cents(0), view.Totals.Shipping)
	assert.Equal(t, pricing.Cents(9_60), view.Totals.Tax)
	assert.Equal(t, pricing.Cents(129_60), view.Totals.Total)
}

func TestAddItemIsIdempotentOnVariant(t *testing.T) {
	uc, _ := newTestCartUsecase(t)

	_, err := uc.AddItem(context.Background(), "u1", "p1", "v1", 1)
	require.NoError(t, err)
	view, err := uc.AddItem(context.Background(), "u1", "p1", "v1", 2)
	require.NoError(t, err)

	require.Len(t, view.Lines, 1) // merged, never duplicated
	assert.Equal(t, 3, view.Lines[0].Qty)
}

func TestGetPrunesLinesDeletedFromCatalog(t *testing.T) {
	products, variants, inventories := testCatalog(t)
	carts := newFakeCartRepo(func() time.Time { return testTime })
	uc := NewCartUsecaseWithClock(carts, products, variants, inventories, fixedClock{t: testTime})

	_, err := uc.AddItem(context.Background(), "u1", "p1", "v1", 1)
	require.NoError(t, err)

	// second line seeded directly; v2 is not purchasable through AddItem
	c, err := carts.Mutate(context.Background(), "u1", func(c *cartdom.Cart) error {
		return c.Add("p1", "v2", 1, testTime)
	})
	require.NoError(t, err)
	require.Len(t, c.Lines, 2)

	// v2 disappears from the catalog after it was carted
	delete(variants.variants, "v2")

	view, err := uc.Get(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "v1", view.Lines[0].VariantID)

	// the stored cart agrees with the rendered one, so checkout sees the
	// same lines the user does
	stored, err := carts.GetByUserID(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Len(t, stored.Lines, 1)
	assert.Equal(t, "v1", stored.Lines[0].VariantID)
}

func TestAddItemOutOfStock(t *testing.T) {
	uc, carts := newTestCartUsecase(t)

	// v2 has quantity 1, reserved 1 -> available 0
	_, err := uc.AddItem(context.Background(), "u1", "p1", "v2", 1)
	assert.ErrorIs(t, err, ErrOutOfStock)

	c, gErr := carts.GetByUserID(context.Background(), "u1")
	require.NoError(t, gErr)
	assert.Nil(t, c) // no cart line was created
}

func TestAddItemRejectsQtyBeyondStock(t *testing.T) {
	uc, _ := newTestCartUsecase(t)

	_, err := uc.AddItem(context.Background(), "u1", "p1", "v1", 4)
	require.NoError(t, err)

	// 4 in cart + 2 more would exceed the 5 available
	_, err = uc.AddItem(context.Background(), "u1", "p1", "v1", 2)
	assert.ErrorIs(t, err, ErrOutOfStock)
}

func TestAddItemRequiresUser(t *testing.T) {
	uc, _ := newTestCartUsecase(t)
	_, err := uc.AddItem(context.Background(), "  ", "p1", "v1", 1)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestSetQtyZeroRejectedLineUnchanged(t *testing.T) {
	uc, _ := newTestCartUsecase(t)

	_, err := uc.AddItem(context.Background(), "u1", "p1", "v1", 3)
	require.NoError(t, err)

	_, err = uc.SetQty(context.Background(), "u1", "v1", 0)
	require.Error(t, err)

	view, err := uc.Get(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 3, view.Lines[0].Qty)
}

func TestRemoveItem(t *testing.T) {
	uc, _ := newTestCartUsecase(t)

	_, err := uc.AddItem(context.Background(), "u1", "p1", "v1", 1)
	require.NoError(t, err)

	view, err := uc.RemoveItem(context.Background(), "u1", "v1")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
	assert.Equal(t, pricing.Totals{}, view.Totals)
}

func TestGetAbsentCartRendersEmpty(t *testing.T) {
	uc, _ := newTestCartUsecase(t)

	view, err := uc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, view.Lines)
}

func TestCartRendersLiveCatalogPrices(t *testing.T) {
	products, variants, inventories := testCatalog(t)
	carts := newFakeCartRepo(func() time.Time { return testTime })
	uc := NewCartUsecaseWithClock(carts, products, variants, inventories, fixedClock{t: testTime})

	_, err := uc.AddItem(context.Background(), "u1", "p1", "v1", 1)
	require.NoError(t, err)

	// catalog price changes after the add; the cart shows the new price
	p := products.products["p1"]
	p.BasePrice = 80_00
	products.products["p1"] = p

	view, err := uc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, pricing.Cents(90_00), view.Lines[0].UnitPrice)
}
