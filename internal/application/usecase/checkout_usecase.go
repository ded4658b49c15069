// internal/application/usecase/checkout_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"

	cartdom "atelier/internal/domain/cart"
	"atelier/internal/domain/checkout"
	orderdom "atelier/internal/domain/order"
	orderitem "atelier/internal/domain/orderItem"
	"atelier/internal/domain/pricing"
	proddom "atelier/internal/domain/product"
	vardom "atelier/internal/domain/variant"
)

var (
	ErrCheckoutEmptyCart = errors.New("checkout_usecase: cart is empty")
	ErrCheckoutLineStale = errors.New("checkout_usecase: cart line no longer purchasable")
	ErrCheckoutNotWired  = errors.New("checkout_usecase: store is not configured")
)

// OrderMailer is the outbound port for the confirmation email. Sending is
// best-effort and never fails a placed order.
type OrderMailer interface {
	SendOrderConfirmation(ctx context.Context, toEmail string, o orderdom.Order, items []orderitem.OrderItem) error
}

// CheckoutUsecase converts the user's cart into a persisted order.
//
// Flow per attempt: Validating -> Placing(order) -> PlacingItems (with stock
// reservation) -> ClearingCart -> Done. Validation failures abort before any
// write. The write set is handed to checkout.Store as one Placement; the
// store decides atomic commit vs. step-wise intent tracking, and failures
// come back stage-tagged.
type CheckoutUsecase struct {
	carts    cartdom.Repository
	products proddom.Repository
	variants vardom.Repository
	store    checkout.Store
	mailer   OrderMailer // optional

	clock Clock
	ids   IDGenerator
}

func NewCheckoutUsecase(
	carts cartdom.Repository,
	products proddom.Repository,
	variants vardom.Repository,
	store checkout.Store,
	mailer OrderMailer,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		carts:    carts,
		products: products,
		variants: variants,
		store:    store,
		mailer:   mailer,
		clock:    systemClock{},
		ids:      uuidGenerator{},
	}
}

// WithClock swaps the clock and id generator; tests only.
func (uc *CheckoutUsecase) WithClock(clock Clock, ids IDGenerator) *CheckoutUsecase {
	if clock != nil {
		uc.clock = clock
	}
	if ids != nil {
		uc.ids = ids
	}
	return uc
}

// PlaceOrderInput is the checkout request: the address/payment snapshot to
// freeze into the order.
type PlaceOrderInput struct {
	ShippingAddress orderdom.ShippingSnapshot
	PaymentMethod   string
}

// PlaceOrder runs one checkout attempt for userID and returns the order id.
//
// Totals are recomputed from the current cart and catalog at placement, not
// reused from an earlier display. The order id is generated before any write
// and doubles as the attempt's idempotency key; placement writes are never
// blindly retried.
func (uc *CheckoutUsecase) PlaceOrder(ctx context.Context, userID string, in PlaceOrderInput) (string, error) {
	uid, err := requireUserID(userID)
	if err != nil {
		return "", err
	}
	if uc.store == nil {
		return "", ErrCheckoutNotWired
	}

	// ---- Validating (no side effects on failure) ----
	if err := orderdom.ValidateShippingSnapshot(in.ShippingAddress); err != nil {
		return "", err
	}
	pm, err := orderdom.ParsePaymentMethod(in.PaymentMethod)
	if err != nil {
		return "", err
	}

	rctx, cancel := withReadTimeout(ctx)
	c, err := uc.carts.GetByUserID(rctx, uid)
	cancel()
	if err != nil {
		return "", err
	}
	if c == nil || c.IsEmpty() {
		return "", ErrCheckoutEmptyCart
	}

	// ---- Build the frozen write set from the current catalog ----
	now := uc.clock.Now()
	orderID := uc.ids.NewID()

	items := make([]orderitem.OrderItem, 0, len(c.Lines))
	reservations := make([]checkout.Reservation, 0, len(c.Lines))
	priced := make([]pricing.Line, 0, len(c.Lines))

	rctx, cancel = withReadTimeout(ctx)
	defer cancel()
	for _, l := range c.Lines {
		p, err := uc.products.GetByID(rctx, l.ProductID)
		if err != nil {
			return "", err
		}
		v, err := uc.variants.GetByID(rctx, l.VariantID)
		if err != nil {
			return "", err
		}
		if !p.Active || !v.Available {
			return "", ErrCheckoutLineStale
		}

		unit := v.EffectivePrice(p.BasePrice)
		it, err := orderitem.New(
			uc.ids.NewID(),
			orderID,
			p.ID,
			v.ID,
			p.Name,
			v.Size,
			v.Color,
			l.Qty,
			unit,
			now,
		)
		if err != nil {
			return "", err
		}

		items = append(items, it)
		reservations = append(reservations, checkout.Reservation{VariantID: v.ID, Qty: l.Qty})
		priced = append(priced, pricing.Line{UnitPrice: unit, Quantity: l.Qty})
	}

	totals := pricing.ComputeTotals(priced)

	o, err := orderdom.New(orderID, uid, in.ShippingAddress, pm, totals, now)
	if err != nil {
		return "", err
	}

	// ---- Place (remote writes; stage-tagged on failure) ----
	wctx, wcancel := withWriteTimeout(ctx)
	defer wcancel()

	placement := checkout.Placement{
		Order:        o,
		Items:        items,
		Reservations: reservations,
		CartUserID:   uid,
	}
	if err := uc.store.Place(wctx, placement); err != nil {
		if stage, ok := checkout.StageOf(err); ok {
			log.Printf("[checkout_uc] WARN: placement failed orderId=%s stage=%s err=%v", orderID, stage, err)
		} else {
			log.Printf("[checkout_uc] WARN: placement failed orderId=%s err=%v", orderID, err)
		}
		return "", err
	}

	// ---- Done; confirmation mail is best-effort ----
	if uc.mailer != nil {
		if mErr := uc.mailer.SendOrderConfirmation(ctx, o.ShippingSnapshot.Email, o, items); mErr != nil {
			log.Printf("[checkout_uc] WARN: confirmation mail failed orderId=%s err=%v", orderID, mErr)
		}
	}

	log.Printf("[checkout_uc] OK: order placed orderId=%s userId=%s total=%d", orderID, uid, totals.Total)
	return orderID, nil
}
