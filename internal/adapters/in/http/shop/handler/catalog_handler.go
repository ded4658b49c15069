// internal/adapters/in/http/shop/handler/catalog_handler.go
package shopHandler

import (
	"net/http"
	"strings"

	usecase "atelier/internal/application/usecase"
	proddom "atelier/internal/domain/product"
	vardom "atelier/internal/domain/variant"
)

// CatalogHandler serves the storefront product read side.
//
// Routes (under /shop):
//   - GET /shop/products                      list active products (?category=)
//   - GET /shop/products/{id}                 product detail with variants
//   - GET /shop/products/{id}/variant         resolve a selection (?size=&color=&current=)
type CatalogHandler struct {
	uc *usecase.CatalogUsecase

	// listings read the product repository directly; the usecase owns
	// per-product composition only
	products proddom.Repository
}

func NewCatalogHandler(uc *usecase.CatalogUsecase, products proddom.Repository) http.Handler {
	return &CatalogHandler{uc: uc, products: products}
}

func (h *CatalogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "catalog handler is not configured")
		return
	}
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")
	rest := strings.TrimPrefix(path, "/shop/products")
	rest = strings.TrimPrefix(rest, "/")

	switch {
	case rest == "":
		h.handleList(w, r)

	case strings.HasSuffix(rest, "/variant"):
		productID := strings.TrimSuffix(rest, "/variant")
		h.handleResolveVariant(w, r, productID)

	case !strings.Contains(rest, "/"):
		h.handleGetDetail(w, r, rest)

	default:
		writeErr(w, http.StatusNotFound, "not found")
	}
}

func (h *CatalogHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if h.products == nil {
		writeErr(w, http.StatusInternalServerError, "catalog handler is not configured")
		return
	}

	category := strings.TrimSpace(r.URL.Query().Get("category"))
	items, err := h.products.ListActive(r.Context(), category)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}

	out := make([]productSummaryDTO, 0, len(items))
	for _, p := range items {
		out = append(out, productSummaryDTO{
			ID:         p.ID,
			Name:       p.Name,
			Brand:      p.Brand,
			BasePrice:  int64(p.BasePrice),
			CategoryID: p.CategoryID,
			Tags:       p.Tags,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{"products": out})
}

func (h *CatalogHandler) handleGetDetail(w http.ResponseWriter, r *http.Request, productID string) {
	detail, err := h.uc.GetProductDetail(r.Context(), productID)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toProductDetailDTO(detail))
}

// handleResolveVariant serves selection changes. With ?current= set, a size
// or color query runs the axis-change logic (hold the other axis when
// possible); without it the size/color pair resolves from scratch.
func (h *CatalogHandler) handleResolveVariant(w http.ResponseWriter, r *http.Request, productID string) {
	q := r.URL.Query()
	size := strings.TrimSpace(q.Get("size"))
	color := strings.TrimSpace(q.Get("color"))
	current := strings.TrimSpace(q.Get("current"))

	var (
		view    usecase.VariantView
		matched bool
		err     error
	)
	switch {
	case current != "" && size != "":
		view, matched, err = h.uc.ChangeSize(r.Context(), productID, current, size)
	case current != "" && color != "":
		view, matched, err = h.uc.ChangeColor(r.Context(), productID, current, color)
	default:
		view, matched, err = h.uc.ResolveVariant(r.Context(), productID, vardom.Selection{Size: size, Color: color})
	}
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	if !matched {
		writeErr(w, http.StatusNotFound, "no available variant for selection")
		return
	}
	writeJSON(w, http.StatusOK, toVariantViewDTO(view))
}

// -----------------------------------------
// DTOs
// -----------------------------------------

type productSummaryDTO struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Brand      string   `json:"brand,omitempty"`
	BasePrice  int64    `json:"basePrice"`
	CategoryID string   `json:"categoryId,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

type variantViewDTO struct {
	ID              string `json:"id"`
	ProductID       string `json:"productId"`
	Size            string `json:"size"`
	Color           string `json:"color"`
	ColorHex        string `json:"colorHex,omitempty"`
	SKU             string `json:"sku,omitempty"`
	Stock           int    `json:"stock"`
	EffectivePrice  int64  `json:"effectivePrice"`
	Purchasable     bool   `json:"purchasable"`
	PriceAdjustment int64  `json:"priceAdjustment"`
}

type productDetailDTO struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Brand       string           `json:"brand,omitempty"`
	Description string           `json:"description,omitempty"`
	BasePrice   int64            `json:"basePrice"`
	CategoryID  string           `json:"categoryId,omitempty"`
	Tags        []string         `json:"tags,omitempty"`
	Variants    []variantViewDTO `json:"variants"`
	Sizes       []string         `json:"sizes"`
	Colors      []string         `json:"colors"`
	Orderable   bool             `json:"orderable"`
}

func toVariantViewDTO(v usecase.VariantView) variantViewDTO {
	return variantViewDTO{
		ID:              v.Variant.ID,
		ProductID:       v.Variant.ProductID,
		Size:            v.Variant.Size,
		Color:           v.Variant.Color,
		ColorHex:        v.Variant.ColorHex,
		SKU:             v.Variant.SKU,
		Stock:           v.Stock,
		EffectivePrice:  int64(v.EffectivePrice),
		Purchasable:     v.Purchasable,
		PriceAdjustment: int64(v.Variant.PriceAdjustment),
	}
}

func toProductDetailDTO(d usecase.ProductDetail) productDetailDTO {
	variants := make([]variantViewDTO, 0, len(d.Variants))
	for _, v := range d.Variants {
		variants = append(variants, toVariantViewDTO(v))
	}
	return productDetailDTO{
		ID:          d.Product.ID,
		Name:        d.Product.Name,
		Brand:       d.Product.Brand,
		Description: d.Product.Description,
		BasePrice:   int64(d.Product.BasePrice),
		CategoryID:  d.Product.CategoryID,
		Tags:        d.Product.Tags,
		Variants:    variants,
		Sizes:       d.Sizes,
		Colors:      d.Colors,
		Orderable:   d.Orderable,
	}
}
