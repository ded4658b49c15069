// internal/application/usecase/cart_usecase.go
package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	cartdom "atelier/internal/domain/cart"
	invdom "atelier/internal/domain/inventory"
	"atelier/internal/domain/pricing"
	proddom "atelier/internal/domain/product"
	vardom "atelier/internal/domain/variant"
)

var (
	ErrCartInvalidArgument = errors.New("cart_usecase: invalid argument")
	ErrCartNotFound        = errors.New("cart_usecase: not found")

	// ErrOutOfStock is the availability error: the variant is inactive,
	// unavailable, or the requested quantity exceeds available stock at
	// call time. Best-effort; the checkout reservation is authoritative.
	ErrOutOfStock = errors.New("cart_usecase: out of stock")
)

// CartLineView is one cart line priced against the current catalog.
// Cart totals reflect live catalog prices at render time; order totals are
// frozen separately at checkout.
type CartLineView struct {
	ProductID   string
	VariantID   string
	ProductName string
	Brand       string
	Size        string
	Color       string
	Qty         int
	UnitPrice   pricing.Cents
	LineTotal   pricing.Cents
}

// CartView is the rendered cart: priced lines plus computed totals.
type CartView struct {
	UserID string
	Lines  []CartLineView
	Totals pricing.Totals
}

// CartUsecase coordinates cart mutations and cart rendering.
type CartUsecase struct {
	carts       cartdom.Repository
	products    proddom.Repository
	variants    vardom.Repository
	inventories invdom.Repository
	clock       Clock
}

func NewCartUsecase(
	carts cartdom.Repository,
	products proddom.Repository,
	variants vardom.Repository,
	inventories invdom.Repository,
) *CartUsecase {
	return &CartUsecase{
		carts:       carts,
		products:    products,
		variants:    variants,
		inventories: inventories,
		clock:       systemClock{},
	}
}

// NewCartUsecaseWithClock is useful for tests.
func NewCartUsecaseWithClock(
	carts cartdom.Repository,
	products proddom.Repository,
	variants vardom.Repository,
	inventories invdom.Repository,
	clock Clock,
) *CartUsecase {
	if clock == nil {
		clock = systemClock{}
	}
	uc := NewCartUsecase(carts, products, variants, inventories)
	uc.clock = clock
	return uc
}

// Get renders the user's cart against current catalog prices.
// An absent cart renders as an empty view, not an error.
func (uc *CartUsecase) Get(ctx context.Context, userID string) (CartView, error) {
	uid, err := requireUserID(userID)
	if err != nil {
		return CartView{}, err
	}

	ctx, cancel := withReadTimeout(ctx)
	defer cancel()

	c, err := uc.carts.GetByUserID(ctx, uid)
	if err != nil {
		return CartView{}, err
	}
	if c == nil {
		return CartView{UserID: uid, Lines: []CartLineView{}}, nil
	}
	return uc.render(ctx, uid, c)
}

// AddItem adds qty of variant to the user's cart, merging into an existing
// line for the same variant. Rejects unavailable variants and quantities
// beyond available stock at call time (check-then-act by design here; the
// conditional reservation at checkout is the authoritative guard).
func (uc *CartUsecase) AddItem(ctx context.Context, userID, productID, variantID string, qty int) (CartView, error) {
	uid, err := requireUserID(userID)
	if err != nil {
		return CartView{}, err
	}

	pid := strings.TrimSpace(productID)
	vid := strings.TrimSpace(variantID)
	if pid == "" || vid == "" || qty <= 0 {
		return CartView{}, ErrCartInvalidArgument
	}

	p, v, stock, err := uc.fetchPurchasable(ctx, pid, vid)
	if err != nil {
		return CartView{}, err
	}
	if v.ProductID != pid {
		return CartView{}, ErrCartInvalidArgument
	}
	if !p.Active || !v.Purchasable(stock) {
		return CartView{}, ErrOutOfStock
	}

	now := uc.clock.Now()
	c, err := uc.carts.Mutate(ctx, uid, func(c *cartdom.Cart) error {
		requested := qty
		if l, ok := c.Line(vid); ok {
			requested += l.Qty
		}
		if requested > stock {
			return ErrOutOfStock
		}
		return c.Add(pid, vid, qty, now)
	})
	if err != nil {
		return CartView{}, err
	}
	return uc.render(ctx, uid, c)
}

// SetQty replaces a line's quantity. qty must be >= 1; zero or negative is
// rejected and the line keeps its prior quantity. Use RemoveItem to delete.
func (uc *CartUsecase) SetQty(ctx context.Context, userID, variantID string, qty int) (CartView, error) {
	uid, err := requireUserID(userID)
	if err != nil {
		return CartView{}, err
	}

	vid := strings.TrimSpace(variantID)
	if vid == "" {
		return CartView{}, ErrCartInvalidArgument
	}
	if qty <= 0 {
		return CartView{}, cartdom.ErrInvalidQty
	}

	now := uc.clock.Now()
	c, err := uc.carts.Mutate(ctx, uid, func(c *cartdom.Cart) error {
		return c.SetQty(vid, qty, now)
	})
	if err != nil {
		return CartView{}, err
	}
	return uc.render(ctx, uid, c)
}

// RemoveItem deletes the line for variantID unconditionally.
func (uc *CartUsecase) RemoveItem(ctx context.Context, userID, variantID string) (CartView, error) {
	uid, err := requireUserID(userID)
	if err != nil {
		return CartView{}, err
	}

	vid := strings.TrimSpace(variantID)
	if vid == "" {
		return CartView{}, ErrCartInvalidArgument
	}

	now := uc.clock.Now()
	c, err := uc.carts.Mutate(ctx, uid, func(c *cartdom.Cart) error {
		return c.Remove(vid, now)
	})
	if err != nil {
		return CartView{}, err
	}
	return uc.render(ctx, uid, c)
}

// Clear deletes the cart document (empty-cart UX).
func (uc *CartUsecase) Clear(ctx context.Context, userID string) error {
	uid, err := requireUserID(userID)
	if err != nil {
		return err
	}
	return uc.carts.DeleteByUserID(ctx, uid)
}

// ----------------------------
// Rendering
// ----------------------------

func (uc *CartUsecase) render(ctx context.Context, userID string, c *cartdom.Cart) (CartView, error) {
	view := CartView{UserID: userID, Lines: []CartLineView{}}
	if c == nil || c.IsEmpty() {
		return view, nil
	}

	priced := make([]pricing.Line, 0, len(c.Lines))
	var stale []string
	for _, l := range c.Lines {
		p, v, err := uc.fetchCatalogPair(ctx, l.ProductID, l.VariantID)
		if err != nil {
			if errors.Is(err, proddom.ErrNotFound) || errors.Is(err, vardom.ErrNotFound) {
				// product or variant deleted since the line was added:
				// drop it from the stored cart too, so checkout never
				// trips over a line the user cannot see
				stale = append(stale, l.VariantID)
				continue
			}
			return CartView{}, err
		}

		unit := v.EffectivePrice(p.BasePrice)
		view.Lines = append(view.Lines, CartLineView{
			ProductID:   p.ID,
			VariantID:   v.ID,
			ProductName: p.Name,
			Brand:       p.Brand,
			Size:        v.Size,
			Color:       v.Color,
			Qty:         l.Qty,
			UnitPrice:   unit,
			LineTotal:   unit * pricing.Cents(l.Qty),
		})
		priced = append(priced, pricing.Line{UnitPrice: unit, Quantity: l.Qty})
	}

	if len(stale) > 0 {
		uc.pruneStaleLines(ctx, userID, stale)
	}

	view.Totals = pricing.ComputeTotals(priced)
	return view, nil
}

// pruneStaleLines removes cart lines whose catalog entries are gone.
// Best-effort: the rendered view already excludes them, a failed prune
// only means the next render tries again.
func (uc *CartUsecase) pruneStaleLines(ctx context.Context, userID string, variantIDs []string) {
	now := uc.clock.Now()
	_, err := uc.carts.Mutate(ctx, userID, func(c *cartdom.Cart) error {
		for _, vid := range variantIDs {
			if err := c.Remove(vid, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("[cart_usecase] WARN: failed to prune stale cart lines user=%s: %v", userID, err)
	}
}

func (uc *CartUsecase) fetchCatalogPair(ctx context.Context, productID, variantID string) (proddom.Product, vardom.Variant, error) {
	p, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return proddom.Product{}, vardom.Variant{}, err
	}
	v, err := uc.variants.GetByID(ctx, variantID)
	if err != nil {
		return proddom.Product{}, vardom.Variant{}, err
	}
	return p, v, nil
}

func (uc *CartUsecase) fetchPurchasable(ctx context.Context, productID, variantID string) (proddom.Product, vardom.Variant, int, error) {
	rctx, cancel := withReadTimeout(ctx)
	defer cancel()

	p, v, err := uc.fetchCatalogPair(rctx, productID, variantID)
	if err != nil {
		return proddom.Product{}, vardom.Variant{}, 0, err
	}

	stock := 0
	inv, err := uc.inventories.GetByVariantID(rctx, variantID)
	switch {
	case err == nil:
		stock = inv.Available()
	case errors.Is(err, invdom.ErrNotFound):
		// no record -> no stock
	default:
		return proddom.Product{}, vardom.Variant{}, 0, err
	}
	return p, v, stock, nil
}
