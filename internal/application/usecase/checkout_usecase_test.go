package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartdom "atelier/internal/domain/cart"
	"atelier/internal/domain/checkout"
	invdom "atelier/internal/domain/inventory"
	orderdom "atelier/internal/domain/order"
	"atelier/internal/domain/pricing"
)

func validAddress() orderdom.ShippingSnapshot {
	return orderdom.ShippingSnapshot{
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

type checkoutFixture struct {
	uc          *CheckoutUsecase
	carts       *fakeCartRepo
	orders      *fakeOrderRepo
	items       *fakeItemRepo
	inventories *fakeInventoryRepo
	intents     *fakeIntentRepo
}

// newCheckoutFixture wires the usecase to the step-wise sequencer over
// in-memory fakes, with one cart line: 2 x v1 (base 50.00 + adj 10.00).
func newCheckoutFixture(t *testing.T) checkoutFixture {
	t.Helper()

	products, variants, inventories := testCatalog(t)
	carts := newFakeCartRepo(func() time.Time { return testTime })
	orders := newFakeOrderRepo()
	items := newFakeItemRepo()
	intents := newFakeIntentRepo()

	seq := NewCheckoutSequencerWithClock(intents, orders, items, inventories, carts, fixedClock{t: testTime})
	uc := NewCheckoutUsecase(carts, products, variants, seq, nil).
		WithClock(fixedClock{t: testTime}, &seqIDs{})

	_, err := carts.Mutate(context.Background(), "u1", func(c *cartdom.Cart) error {
		return c.Add("p1", "v1", 2, testTime)
	})
	require.NoError(t, err)

	return checkoutFixture{uc: uc, carts: carts, orders: orders, items: items, inventories: inventories, intents: intents}
}

func TestPlaceOrderHappyPath(t *testing.T) {
	f := newCheckoutFixture(t)

	orderID, err := f.uc.PlaceOrder(context.Background(), "u1", PlaceOrderInput{
		ShippingAddress: validAddress(),
		PaymentMethod:   "card",
	})
	require.NoError(t, err)
	require.NotEmpty(t, orderID)

	o, err := f.orders.GetByID(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, orderdom.StatusConfirmed, o.Status)
	assert.Equal(t, pricing.Cents(120_00), o.Totals.Subtotal)
	assert.Equal(t, pricing.Cents(0), o.Totals.Shipping)
	assert.Equal(t, pricing.Cents(9_60), o.Totals.Tax)
	assert.Equal(t, pricing.Cents(129_60), o.Totals.Total)

	its, err := f.items.ListByOrderID(context.Background(), orderID)
	require.NoError(t, err)
	require.Len(t, its, 1)
	assert.Equal(t, pricing.Cents(60_00), its[0].UnitPrice)
	assert.Equal(t, pricing.Cents(120_00), its[0].TotalPrice)
	assert.Equal(t, "Wool Coat", its[0].ProductName)

	// stock consumed
	inv, err := f.inventories.GetByVariantID(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, 3, inv.Available())

	// cart cleared
	c, err := f.carts.GetByUserID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, c)

	// intent completed
	in, err := f.intents.GetByID(context.Background(), orderID)
	require.NoError(t, err)
	assert.Equal(t, checkout.StageDone, in.Stage)
	assert.False(t, in.Failed)
}

func TestPlaceOrderValidationFailuresHaveNoSideEffects(t *testing.T) {
	f := newCheckoutFixture(t)

	addr := validAddress()
	addr.Phone = "   "
	_, err := f.uc.PlaceOrder(context.Background(), "u1", PlaceOrderInput{
		ShippingAddress: addr,
		PaymentMethod:   "card",
	})
	assert.ErrorIs(t, err, orderdom.ErrInvalidShippingAddress)

	_, err = f.uc.PlaceOrder(context.Background(), "u1", PlaceOrderInput{
		ShippingAddress: validAddress(),
		PaymentMethod:   "cheque",
	})
	assert.ErrorIs(t, err, orderdom.ErrInvalidPaymentMethod)

	// nothing was written, cart untouched
	assert.Empty(t, f.orders.orders)
	assert.Empty(t, f.intents.intents)
	c, gErr := f.carts.GetByUserID(context.Background(), "u1")
	require.NoError(t, gErr)
	require.NotNil(t, c)
	assert.False(t, c.IsEmpty())
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	f := newCheckoutFixture(t)

	_, err := f.uc.PlaceOrder(context.Background(), "u2", PlaceOrderInput{
		ShippingAddress: validAddress(),
		PaymentMethod:   "wallet",
	})
	assert.ErrorIs(t, err, ErrCheckoutEmptyCart)
}

func TestPlaceOrderAnonymousRejected(t *testing.T) {
	f := newCheckoutFixture(t)
	_, err := f.uc.PlaceOrder(context.Background(), "", PlaceOrderInput{
		ShippingAddress: validAddress(),
		PaymentMethod:   "card",
	})
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestPlaceOrderItemInsertFailureKeepsOrderAndCart(t *testing.T) {
	f := newCheckoutFixture(t)
	f.items.createErr = assert.AnError // order insert succeeds, item insert fails

	_, err := f.uc.PlaceOrder(context.Background(), "u1", PlaceOrderInput{
		ShippingAddress: validAddress(),
		PaymentMethod:   "card",
	})
	require.Error(t, err)

	stage, ok := checkout.StageOf(err)
	require.True(t, ok)
	assert.Equal(t, checkout.StagePlacingItems, stage)

	// the order stays behind in a detectable incomplete state
	require.Len(t, f.orders.orders, 1)
	var orderID string
	for id := range f.orders.orders {
		orderID = id
	}
	its, lErr := f.items.ListByOrderID(context.Background(), orderID)
	require.NoError(t, lErr)
	assert.Empty(t, its)

	in, gErr := f.intents.GetByID(context.Background(), orderID)
	require.NoError(t, gErr)
	assert.True(t, in.Failed)
	assert.Equal(t, checkout.StageReservingStock, in.Stage) // last completed write

	// the cart must NOT have been cleared
	c, cErr := f.carts.GetByUserID(context.Background(), "u1")
	require.NoError(t, cErr)
	require.NotNil(t, c)
	assert.False(t, c.IsEmpty())
}

func TestPlaceOrderInsufficientStockTagged(t *testing.T) {
	f := newCheckoutFixture(t)

	// drain v1 down to 1 available; cart wants 2
	require.NoError(t, f.inventories.Reserve(context.Background(), "v1", 4))

	_, err := f.uc.PlaceOrder(context.Background(), "u1", PlaceOrderInput{
		ShippingAddress: validAddress(),
		PaymentMethod:   "card",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, invdom.ErrInsufficientStock)

	stage, ok := checkout.StageOf(err)
	require.True(t, ok)
	assert.Equal(t, checkout.StageReservingStock, stage)
}

func TestPlaceOrderStageErrorFromStoreSurfaces(t *testing.T) {
	products, variants, _ := testCatalog(t)
	carts := newFakeCartRepo(func() time.Time { return testTime })
	uc := NewCheckoutUsecase(carts, products, variants, failingStore{stage: checkout.StagePlacingOrder}, nil).
		WithClock(fixedClock{t: testTime}, &seqIDs{})

	_, err := carts.Mutate(context.Background(), "u1", func(c *cartdom.Cart) error {
		return c.Add("p1", "v1", 1, testTime)
	})
	require.NoError(t, err)

	_, err = uc.PlaceOrder(context.Background(), "u1", PlaceOrderInput{
		ShippingAddress: validAddress(),
		PaymentMethod:   "bank_transfer",
	})
	require.Error(t, err)

	stage, ok := checkout.StageOf(err)
	require.True(t, ok)
	assert.Equal(t, checkout.StagePlacingOrder, stage)
}

// Stock conservation: concurrent checkouts against N available units never
// place more than N units worth of orders.
func TestConcurrentCheckoutsNeverOversell(t *testing.T) {
	products, variants, inventories := testCatalog(t) // v1 has 5 available

	const attempts = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	placed := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()

			uid := fmt.Sprintf("user-%02d", n)
			carts := newFakeCartRepo(func() time.Time { return testTime })
			orders := newFakeOrderRepo()
			items := newFakeItemRepo()
			intents := newFakeIntentRepo()
			seq := NewCheckoutSequencerWithClock(intents, orders, items, inventories, carts, fixedClock{t: testTime})
			uc := NewCheckoutUsecase(carts, products, variants, seq, nil).
				WithClock(fixedClock{t: testTime}, &seqIDs{})

			_, err := carts.Mutate(context.Background(), uid, func(c *cartdom.Cart) error {
				return c.Add("p1", "v1", 1, testTime)
			})
			if err != nil {
				return
			}

			if _, err := uc.PlaceOrder(context.Background(), uid, PlaceOrderInput{
				ShippingAddress: validAddress(),
				PaymentMethod:   "card",
			}); err == nil {
				mu.Lock()
				placed++
				mu.Unlock()
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 5, placed)

	inv, err := inventories.GetByVariantID(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, 0, inv.Available())
	assert.Equal(t, 5, inv.Reserved)
}
