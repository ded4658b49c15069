package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	cartdom "atelier/internal/domain/cart"
	"atelier/internal/domain/checkout"
	invdom "atelier/internal/domain/inventory"
	orderdom "atelier/internal/domain/order"
	orderitem "atelier/internal/domain/orderItem"
	proddom "atelier/internal/domain/product"
	vardom "atelier/internal/domain/variant"
)

// ----------------------------
// test clock / ids
// ----------------------------

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type seqIDs struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDs) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%03d", g.n)
}

// ----------------------------
// cart repo
// ----------------------------

type fakeCartRepo struct {
	mu    sync.Mutex
	carts map[string]*cartdom.Cart
	now   func() time.Time

	deleteErr error
}

func newFakeCartRepo(now func() time.Time) *fakeCartRepo {
	return &fakeCartRepo{carts: map[string]*cartdom.Cart{}, now: now}
}

func (r *fakeCartRepo) GetByUserID(_ context.Context, userID string) (*cartdom.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.carts[userID]
	if !ok {
		return nil, nil
	}
	cp := *c
	cp.Lines = append([]cartdom.Line{}, c.Lines...)
	return &cp, nil
}

func (r *fakeCartRepo) Mutate(_ context.Context, userID string, fn func(c *cartdom.Cart) error) (*cartdom.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.carts[userID]
	if !ok {
		nc, err := cartdom.NewCart(userID, nil, r.now())
		if err != nil {
			return nil, err
		}
		c = nc
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	r.carts[userID] = c

	cp := *c
	cp.Lines = append([]cartdom.Line{}, c.Lines...)
	return &cp, nil
}

func (r *fakeCartRepo) DeleteByUserID(_ context.Context, userID string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}

// ----------------------------
// catalog repos
// ----------------------------

type fakeProductRepo struct {
	products map[string]proddom.Product
}

func (r *fakeProductRepo) GetByID(_ context.Context, id string) (proddom.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return proddom.Product{}, proddom.ErrNotFound
	}
	return p, nil
}

func (r *fakeProductRepo) ListActive(_ context.Context, categoryID string) ([]proddom.Product, error) {
	out := []proddom.Product{}
	for _, p := range r.products {
		if !p.Active {
			continue
		}
		if categoryID != "" && p.CategoryID != categoryID {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

type fakeVariantRepo struct {
	variants map[string]vardom.Variant
}

func (r *fakeVariantRepo) GetByID(_ context.Context, id string) (vardom.Variant, error) {
	v, ok := r.variants[id]
	if !ok {
		return vardom.Variant{}, vardom.ErrNotFound
	}
	return v, nil
}

func (r *fakeVariantRepo) ListByProductID(_ context.Context, productID string, availableOnly bool) ([]vardom.Variant, error) {
	out := []vardom.Variant{}
	for _, v := range r.variants {
		if v.ProductID != productID {
			continue
		}
		if availableOnly && !v.Available {
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

type fakeInventoryRepo struct {
	mu    sync.Mutex
	stock map[string]invdom.Inventory

	reserveErr error // forced failure for scenario tests
}

func (r *fakeInventoryRepo) GetByVariantID(_ context.Context, variantID string) (invdom.Inventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	inv, ok := r.stock[variantID]
	if !ok {
		return invdom.Inventory{}, invdom.ErrNotFound
	}
	return inv, nil
}

// Reserve is the conditional decrement under a lock, mirroring the
// store-side semantics the port demands.
func (r *fakeInventoryRepo) Reserve(_ context.Context, variantID string, qty int) error {
	if r.reserveErr != nil {
		return r.reserveErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	inv, ok := r.stock[variantID]
	if !ok {
		return invdom.ErrNotFound
	}
	if err := inv.Reserve(qty, time.Now()); err != nil {
		return err
	}
	r.stock[variantID] = inv
	return nil
}

// ----------------------------
// order / item / intent repos
// ----------------------------

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]orderdom.Order

	createErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]orderdom.Order{}}
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) List(_ context.Context, filter orderdom.Filter, _ orderdom.Sort, _ orderdom.Page) (orderdom.PageResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := []orderdom.Order{}
	for _, o := range r.orders {
		if filter.UserID != "" && o.UserID != filter.UserID {
			continue
		}
		items = append(items, o)
	}
	return orderdom.PageResult{Items: items, TotalCount: len(items), TotalPages: 1, Page: 1, PerPage: len(items)}, nil
}

func (r *fakeOrderRepo) Create(_ context.Context, o orderdom.Order) (orderdom.Order, error) {
	if r.createErr != nil {
		return orderdom.Order{}, r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[o.ID]; ok {
		return orderdom.Order{}, orderdom.ErrConflict
	}
	r.orders[o.ID] = o
	return o, nil
}

func (r *fakeOrderRepo) UpdateStatus(_ context.Context, id string, next orderdom.Status) (orderdom.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return orderdom.Order{}, orderdom.ErrNotFound
	}
	o.Status = next
	r.orders[id] = o
	return o, nil
}

type fakeItemRepo struct {
	mu    sync.Mutex
	items map[string][]orderitem.OrderItem // by order id

	createErr error
}

func newFakeItemRepo() *fakeItemRepo {
	return &fakeItemRepo{items: map[string][]orderitem.OrderItem{}}
}

func (r *fakeItemRepo) CreateMany(_ context.Context, items []orderitem.OrderItem) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range items {
		r.items[it.OrderID] = append(r.items[it.OrderID], it)
	}
	return nil
}

func (r *fakeItemRepo) ListByOrderID(_ context.Context, orderID string) ([]orderitem.OrderItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]orderitem.OrderItem{}, r.items[orderID]...), nil
}

type fakeIntentRepo struct {
	mu      sync.Mutex
	intents map[string]checkout.Intent
}

func newFakeIntentRepo() *fakeIntentRepo {
	return &fakeIntentRepo{intents: map[string]checkout.Intent{}}
}

func (r *fakeIntentRepo) Create(_ context.Context, in checkout.Intent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.intents[in.ID]; ok {
		return checkout.ErrIntentExists
	}
	r.intents[in.ID] = in
	return nil
}

func (r *fakeIntentRepo) GetByID(_ context.Context, id string) (checkout.Intent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	in, ok := r.intents[id]
	if !ok {
		return checkout.Intent{}, checkout.ErrIntentNotFound
	}
	return in, nil
}

func (r *fakeIntentRepo) Save(_ context.Context, in checkout.Intent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.intents[in.ID] = in
	return nil
}

// failingStore always fails with a stage-tagged error.
type failingStore struct{ stage checkout.Stage }

func (s failingStore) Place(context.Context, checkout.Placement) error {
	return &checkout.StageError{Stage: s.stage, Err: errors.New("store down")}
}
