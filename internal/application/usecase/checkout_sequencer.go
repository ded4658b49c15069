// internal/application/usecase/checkout_sequencer.go
package usecase

import (
	"context"
	"errors"
	"log"

	cartdom "atelier/internal/domain/cart"
	"atelier/internal/domain/checkout"
	invdom "atelier/internal/domain/inventory"
	orderdom "atelier/internal/domain/order"
	orderitem "atelier/internal/domain/orderItem"
)

// ErrCheckoutInProgress signals a resubmitted attempt whose intent exists
// but has not completed; the caller must not start a second write sequence
// for the same idempotency key.
var ErrCheckoutInProgress = errors.New("checkout_sequencer: attempt already in progress")

// CheckoutSequencer is the checkout.Store for stores without a multi-write
// transaction boundary. It persists a checkout intent keyed by the order id,
// performs the placement step by step, and advances the intent after each
// completed write. It never rolls back: a failure freezes the intent at the
// stage reached and surfaces a *checkout.StageError, leaving the partial
// state detectable for reconciliation. The cart is cleared last, so a failed
// attempt never loses the cart.
type CheckoutSequencer struct {
	intents     checkout.IntentRepository
	orders      orderdom.Repository
	items       orderitem.Repository
	inventories invdom.Repository
	carts       cartdom.Repository

	clock Clock
}

func NewCheckoutSequencer(
	intents checkout.IntentRepository,
	orders orderdom.Repository,
	items orderitem.Repository,
	inventories invdom.Repository,
	carts cartdom.Repository,
) *CheckoutSequencer {
	return &CheckoutSequencer{
		intents:     intents,
		orders:      orders,
		items:       items,
		inventories: inventories,
		carts:       carts,
		clock:       systemClock{},
	}
}

// NewCheckoutSequencerWithClock is useful for tests.
func NewCheckoutSequencerWithClock(
	intents checkout.IntentRepository,
	orders orderdom.Repository,
	items orderitem.Repository,
	inventories invdom.Repository,
	carts cartdom.Repository,
	clock Clock,
) *CheckoutSequencer {
	s := NewCheckoutSequencer(intents, orders, items, inventories, carts)
	if clock != nil {
		s.clock = clock
	}
	return s
}

func (s *CheckoutSequencer) Place(ctx context.Context, p checkout.Placement) error {
	now := s.clock.Now()

	intent, err := checkout.NewIntent(p.Order.ID, p.Order.UserID, now)
	if err != nil {
		return &checkout.StageError{Stage: checkout.StageValidating, Err: err}
	}

	if err := s.intents.Create(ctx, intent); err != nil {
		if errors.Is(err, checkout.ErrIntentExists) {
			// same idempotency key submitted twice
			prev, gErr := s.intents.GetByID(ctx, p.Order.ID)
			if gErr == nil && prev.Stage == checkout.StageDone {
				return nil // already placed
			}
			return ErrCheckoutInProgress
		}
		return &checkout.StageError{Stage: checkout.StageValidating, Err: err}
	}

	fail := func(stage checkout.Stage, cause error) error {
		intent.MarkFailed(s.clock.Now())
		if sErr := s.intents.Save(ctx, intent); sErr != nil {
			log.Printf("[checkout_seq] WARN: could not persist failed intent orderId=%s err=%v", p.Order.ID, sErr)
		}
		return &checkout.StageError{Stage: stage, OrderID: p.Order.ID, Err: cause}
	}

	advance := func(stage checkout.Stage) error {
		intent.AdvanceTo(stage, s.clock.Now())
		return s.intents.Save(ctx, intent)
	}

	// 1) order
	if _, err := s.orders.Create(ctx, p.Order); err != nil {
		return fail(checkout.StagePlacingOrder, err)
	}
	if err := advance(checkout.StagePlacingOrder); err != nil {
		return fail(checkout.StagePlacingOrder, err)
	}

	// 2) conditional stock reservations; insufficiency aborts here and the
	// order stays behind in a detectable incomplete state
	for _, r := range p.Reservations {
		if err := s.inventories.Reserve(ctx, r.VariantID, r.Qty); err != nil {
			return fail(checkout.StageReservingStock, err)
		}
	}
	if err := advance(checkout.StageReservingStock); err != nil {
		return fail(checkout.StageReservingStock, err)
	}

	// 3) order items
	if err := s.items.CreateMany(ctx, p.Items); err != nil {
		return fail(checkout.StagePlacingItems, err)
	}
	if err := advance(checkout.StagePlacingItems); err != nil {
		return fail(checkout.StagePlacingItems, err)
	}

	// 4) cart clear
	if err := s.carts.DeleteByUserID(ctx, p.CartUserID); err != nil {
		return fail(checkout.StageClearingCart, err)
	}

	if err := advance(checkout.StageDone); err != nil {
		// everything committed; only the bookkeeping write failed
		log.Printf("[checkout_seq] WARN: placement done but intent not finalized orderId=%s err=%v", p.Order.ID, err)
	}
	return nil
}
