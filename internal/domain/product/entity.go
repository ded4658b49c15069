// internal/domain/product/entity.go
package product

import (
	"errors"
	"sort"
	"strings"
	"time"

	"atelier/internal/domain/pricing"
)

var (
	ErrInvalidID        = errors.New("product: invalid id")
	ErrInvalidName      = errors.New("product: invalid name")
	ErrInvalidBasePrice = errors.New("product: invalid basePrice")
	ErrInvalidCreatedAt = errors.New("product: invalid createdAt")
)

// Product is a catalog entry. The fulfillment core reads products; mutation
// happens through admin tooling outside this module.
type Product struct {
	ID          string
	Name        string
	Brand       string // optional
	Description string // optional
	BasePrice   pricing.Cents
	CategoryID  string // optional
	Active      bool
	Tags        []string
	CreatedAt   time.Time
}

func New(
	id string,
	name string,
	brand string,
	description string,
	basePrice pricing.Cents,
	categoryID string,
	active bool,
	tags []string,
	createdAt time.Time,
) (Product, error) {
	p := Product{
		ID:          strings.TrimSpace(id),
		Name:        strings.TrimSpace(name),
		Brand:       strings.TrimSpace(brand),
		Description: strings.TrimSpace(description),
		BasePrice:   basePrice,
		CategoryID:  strings.TrimSpace(categoryID),
		Active:      active,
		Tags:        normalizeTags(tags),
		CreatedAt:   createdAt.UTC(),
	}
	if err := p.validate(); err != nil {
		return Product{}, err
	}
	return p, nil
}

func (p Product) validate() error {
	if p.ID == "" {
		return ErrInvalidID
	}
	if p.Name == "" {
		return ErrInvalidName
	}
	if p.BasePrice < 0 {
		return ErrInvalidBasePrice
	}
	if p.CreatedAt.IsZero() {
		return ErrInvalidCreatedAt
	}
	return nil
}

func normalizeTags(raw []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
