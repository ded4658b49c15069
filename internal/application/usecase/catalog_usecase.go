// internal/application/usecase/catalog_usecase.go
package usecase

import (
	"context"
	"errors"
	"strings"

	invdom "atelier/internal/domain/inventory"
	"atelier/internal/domain/pricing"
	proddom "atelier/internal/domain/product"
	vardom "atelier/internal/domain/variant"
)

var (
	ErrCatalogInvalidArgument = errors.New("catalog_usecase: invalid argument")
)

// VariantView is a variant enriched with live stock and derived pricing,
// ready for selection logic and display.
type VariantView struct {
	Variant        vardom.Variant
	Stock          int // available = quantity - reserved
	EffectivePrice pricing.Cents
	Purchasable    bool
}

// ProductDetail is the storefront read model for one product page.
type ProductDetail struct {
	Product  proddom.Product
	Variants []VariantView
	Sizes    []string
	Colors   []string

	// Orderable is false for inactive products and products with zero
	// purchasable variants. Not an error state.
	Orderable bool
}

// CatalogUsecase composes product, variant, and inventory reads.
type CatalogUsecase struct {
	products    proddom.Repository
	variants    vardom.Repository
	inventories invdom.Repository
}

func NewCatalogUsecase(
	products proddom.Repository,
	variants vardom.Repository,
	inventories invdom.Repository,
) *CatalogUsecase {
	return &CatalogUsecase{
		products:    products,
		variants:    variants,
		inventories: inventories,
	}
}

// GetProductDetail returns the product with its variants, live stock and
// effective prices.
func (uc *CatalogUsecase) GetProductDetail(ctx context.Context, productID string) (ProductDetail, error) {
	pid := strings.TrimSpace(productID)
	if pid == "" {
		return ProductDetail{}, ErrCatalogInvalidArgument
	}

	ctx, cancel := withReadTimeout(ctx)
	defer cancel()

	p, err := uc.products.GetByID(ctx, pid)
	if err != nil {
		return ProductDetail{}, err
	}

	vs, err := uc.variants.ListByProductID(ctx, pid, false)
	if err != nil {
		return ProductDetail{}, err
	}

	views := make([]VariantView, 0, len(vs))
	orderable := false
	for _, v := range vs {
		view, err := uc.variantView(ctx, p, v)
		if err != nil {
			return ProductDetail{}, err
		}
		if p.Active && view.Purchasable {
			orderable = true
		}
		views = append(views, view)
	}

	return ProductDetail{
		Product:   p,
		Variants:  views,
		Sizes:     vardom.Sizes(vs),
		Colors:    vardom.Colors(vs),
		Orderable: orderable,
	}, nil
}

// ResolveVariant maps a partial size/color selection over the product's
// variant list to one concrete variant with live stock. ok is false when no
// available variant matches; callers render "unavailable", not an error.
func (uc *CatalogUsecase) ResolveVariant(ctx context.Context, productID string, sel vardom.Selection) (VariantView, bool, error) {
	p, vs, err := uc.productWithVariants(ctx, productID)
	if err != nil {
		return VariantView{}, false, err
	}

	chosen, ok := vardom.Resolve(vs, sel)
	if !ok {
		return VariantView{}, false, nil
	}
	view, err := uc.variantView(ctx, p, chosen)
	return view, err == nil, err
}

// ChangeSize re-resolves after a size pick, holding the current color when
// possible. ok=false means no change (the control stays disabled).
func (uc *CatalogUsecase) ChangeSize(ctx context.Context, productID, currentVariantID, size string) (VariantView, bool, error) {
	p, vs, err := uc.productWithVariants(ctx, productID)
	if err != nil {
		return VariantView{}, false, err
	}

	chosen, ok := vardom.ChangeSize(vs, currentVariantID, size)
	if !ok {
		return VariantView{}, false, nil
	}
	view, err := uc.variantView(ctx, p, chosen)
	return view, err == nil, err
}

// ChangeColor is symmetric to ChangeSize.
func (uc *CatalogUsecase) ChangeColor(ctx context.Context, productID, currentVariantID, color string) (VariantView, bool, error) {
	p, vs, err := uc.productWithVariants(ctx, productID)
	if err != nil {
		return VariantView{}, false, err
	}

	chosen, ok := vardom.ChangeColor(vs, currentVariantID, color)
	if !ok {
		return VariantView{}, false, nil
	}
	view, err := uc.variantView(ctx, p, chosen)
	return view, err == nil, err
}

func (uc *CatalogUsecase) productWithVariants(ctx context.Context, productID string) (proddom.Product, []vardom.Variant, error) {
	pid := strings.TrimSpace(productID)
	if pid == "" {
		return proddom.Product{}, nil, ErrCatalogInvalidArgument
	}

	ctx, cancel := withReadTimeout(ctx)
	defer cancel()

	p, err := uc.products.GetByID(ctx, pid)
	if err != nil {
		return proddom.Product{}, nil, err
	}
	vs, err := uc.variants.ListByProductID(ctx, pid, false)
	if err != nil {
		return proddom.Product{}, nil, err
	}
	return p, vs, nil
}

func (uc *CatalogUsecase) variantView(ctx context.Context, p proddom.Product, v vardom.Variant) (VariantView, error) {
	stock := 0
	inv, err := uc.inventories.GetByVariantID(ctx, v.ID)
	switch {
	case err == nil:
		stock = inv.Available()
	case errors.Is(err, invdom.ErrNotFound):
		// no inventory record means no stock, not a failure
	default:
		return VariantView{}, err
	}

	return VariantView{
		Variant:        v,
		Stock:          stock,
		EffectivePrice: v.EffectivePrice(p.BasePrice),
		Purchasable:    p.Active && v.Purchasable(stock),
	}, nil
}
