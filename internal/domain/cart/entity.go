// internal/domain/cart/entity.go
package cart

import (
	"errors"
	"sort"
	"strings"
	"time"
)

var (
	ErrInvalidCart = errors.New("cart: invalid")
	ErrInvalidQty  = errors.New("cart: qty must be >= 1")
	ErrLineMissing = errors.New("cart: line not found")
)

// DefaultCartTTL is the inactivity window after which the cart becomes
// eligible for auto deletion (Firestore TTL configured on expiresAt).
const DefaultCartTTL = 30 * 24 * time.Hour

// Line is one line item in a cart. Uniqueness is defined by
// (productId, variantId); ProductID is kept alongside VariantID for display.
type Line struct {
	ProductID string `json:"productId" firestore:"productId"`
	VariantID string `json:"variantId" firestore:"variantId"`
	Qty       int    `json:"qty" firestore:"qty"`
}

// Cart is one cart document per user.
//   - docId = userId (Firestore)
//   - Lines hold at most one entry per (productId, variantId)
//   - ExpiresAt is refreshed on every mutation
type Cart struct {
	// ID is the Firestore docId (= userId).
	ID string `json:"id" firestore:"id"`

	Lines []Line `json:"lines" firestore:"lines"`

	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
	ExpiresAt time.Time `json:"expiresAt" firestore:"expiresAt"`
}

// NewCart creates a cart doc for userID. lines can be nil (treated as empty).
func NewCart(userID string, lines []Line, now time.Time) (*Cart, error) {
	c := &Cart{
		ID:        strings.TrimSpace(userID),
		Lines:     cloneLines(lines),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(DefaultCartTTL),
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Add increments qty for (productId, variantId), creating the line when
// absent. Adding an already-present variant never duplicates the line.
// qty must be >= 1.
func (c *Cart) Add(productID, variantID string, qty int, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}

	pid := strings.TrimSpace(productID)
	vid := strings.TrimSpace(variantID)
	if pid == "" || vid == "" {
		return ErrInvalidCart
	}
	if qty <= 0 {
		return ErrInvalidQty
	}

	if c.Lines == nil {
		c.Lines = []Line{}
	}

	idx := findLineIndex(c.Lines, vid)
	if idx >= 0 {
		c.Lines[idx].Qty += qty
		c.Lines[idx].ProductID = pid
	} else {
		c.Lines = append(c.Lines, Line{ProductID: pid, VariantID: vid, Qty: qty})
	}

	c.touch(now)
	return c.validate()
}

// SetQty replaces the quantity of an existing line. qty must be >= 1;
// zero or negative requests are rejected and leave the line untouched.
// Removing a line is a separate operation (Remove).
func (c *Cart) SetQty(variantID string, qty int, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}

	vid := strings.TrimSpace(variantID)
	if vid == "" {
		return ErrInvalidCart
	}
	if qty <= 0 {
		return ErrInvalidQty
	}

	idx := findLineIndex(c.Lines, vid)
	if idx < 0 {
		return ErrLineMissing
	}

	c.Lines[idx].Qty = qty
	c.touch(now)
	return c.validate()
}

// Remove deletes the line for variantID unconditionally.
// Removing an absent line is a no-op.
func (c *Cart) Remove(variantID string, now time.Time) error {
	if c == nil {
		return ErrInvalidCart
	}

	vid := strings.TrimSpace(variantID)
	if vid == "" {
		return ErrInvalidCart
	}

	if idx := findLineIndex(c.Lines, vid); idx >= 0 {
		c.Lines = append(c.Lines[:idx], c.Lines[idx+1:]...)
	}
	c.touch(now)
	return c.validate()
}

// Line returns the line for variantID, if present.
func (c *Cart) Line(variantID string) (Line, bool) {
	if c == nil {
		return Line{}, false
	}
	if idx := findLineIndex(c.Lines, strings.TrimSpace(variantID)); idx >= 0 {
		return c.Lines[idx], true
	}
	return Line{}, false
}

// IsEmpty reports whether the cart has no lines. An empty cart is not a
// terminal state; adding an item re-enters it.
func (c *Cart) IsEmpty() bool {
	return c == nil || len(c.Lines) == 0
}

// ConsumeAll clears the lines for order creation and returns a snapshot.
// The caller persists the order from the snapshot and then the emptied cart
// in the same logical operation.
func (c *Cart) ConsumeAll(now time.Time) ([]Line, error) {
	if c == nil {
		return nil, ErrInvalidCart
	}

	snap := cloneLines(c.Lines)
	c.Lines = []Line{}

	c.touch(now)
	if err := c.validate(); err != nil {
		return nil, err
	}
	return snap, nil
}

func (c *Cart) touch(now time.Time) {
	c.UpdatedAt = now
	c.ExpiresAt = now.Add(DefaultCartTTL)
}

func (c *Cart) validate() error {
	if c == nil {
		return ErrInvalidCart
	}
	if strings.TrimSpace(c.ID) == "" {
		return ErrInvalidCart
	}
	if c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() || c.ExpiresAt.IsZero() {
		return ErrInvalidCart
	}
	if c.UpdatedAt.Before(c.CreatedAt) {
		return ErrInvalidCart
	}
	if c.ExpiresAt.Before(c.UpdatedAt) {
		return ErrInvalidCart
	}

	if len(c.Lines) == 0 {
		return nil
	}

	// normalize + merge duplicates + stable order
	c.Lines = normalizeAndMerge(c.Lines)

	for _, l := range c.Lines {
		if strings.TrimSpace(l.ProductID) == "" || strings.TrimSpace(l.VariantID) == "" || l.Qty <= 0 {
			return ErrInvalidCart
		}
	}
	return nil
}

// ----------------------------
// Helpers
// ----------------------------

func findLineIndex(lines []Line, variantID string) int {
	for i := range lines {
		if lines[i].VariantID == variantID {
			return i
		}
	}
	return -1
}

func normalizeAndMerge(src []Line) []Line {
	m := map[string]Line{}
	for _, l := range src {
		pid := strings.TrimSpace(l.ProductID)
		vid := strings.TrimSpace(l.VariantID)
		if pid == "" || vid == "" || l.Qty <= 0 {
			continue
		}
		if exist, ok := m[vid]; ok {
			exist.Qty += l.Qty
			m[vid] = exist
		} else {
			m[vid] = Line{ProductID: pid, VariantID: vid, Qty: l.Qty}
		}
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Line, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}

func cloneLines(src []Line) []Line {
	if len(src) == 0 {
		return []Line{}
	}
	cp := make([]Line, 0, len(src))
	cp = append(cp, src...)
	return normalizeAndMerge(cp)
}
