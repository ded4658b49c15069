// internal/adapters/in/http/shop/handler/helpers.go
package shopHandler

import (
	"encoding/json"
	"errors"
	"net/http"

	usecase "atelier/internal/application/usecase"
	cartdom "atelier/internal/domain/cart"
	"atelier/internal/domain/checkout"
	invdom "atelier/internal/domain/inventory"
	orderdom "atelier/internal/domain/order"
	orderitem "atelier/internal/domain/orderItem"
	"atelier/internal/domain/pricing"
	proddom "atelier/internal/domain/product"
	vardom "atelier/internal/domain/variant"
)

// ============================================================
// Response helpers
// ============================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeUsecaseErr maps domain and usecase errors onto HTTP statuses.
// Stage-tagged checkout failures deliberately return a generic message: the
// order id and stage stay in the server log, not in the response.
func writeUsecaseErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		writeErr(w, http.StatusUnauthorized, "unauthorized")

	case errors.Is(err, usecase.ErrOrderForbidden):
		writeErr(w, http.StatusForbidden, "forbidden")

	case errors.Is(err, proddom.ErrNotFound),
		errors.Is(err, vardom.ErrNotFound),
		errors.Is(err, orderdom.ErrNotFound),
		errors.Is(err, orderitem.ErrNotFound),
		errors.Is(err, usecase.ErrCartNotFound),
		errors.Is(err, cartdom.ErrLineMissing):
		writeErr(w, http.StatusNotFound, "not found")

	case errors.Is(err, usecase.ErrOutOfStock),
		errors.Is(err, invdom.ErrInsufficientStock):
		writeErr(w, http.StatusConflict, "out of stock")

	case errors.Is(err, usecase.ErrCheckoutLineStale):
		writeErr(w, http.StatusConflict, "cart contains items that are no longer available")

	case errors.Is(err, usecase.ErrCheckoutInProgress):
		writeErr(w, http.StatusConflict, "checkout already in progress")

	case errors.Is(err, usecase.ErrCheckoutEmptyCart):
		writeErr(w, http.StatusBadRequest, "cart is empty")

	case errors.Is(err, orderdom.ErrInvalidShippingAddress),
		errors.Is(err, orderdom.ErrInvalidPaymentMethod),
		errors.Is(err, orderdom.ErrInvalidStatus),
		errors.Is(err, cartdom.ErrInvalidQty),
		errors.Is(err, usecase.ErrCartInvalidArgument),
		errors.Is(err, usecase.ErrCatalogInvalidArgument),
		errors.Is(err, usecase.ErrOrderInvalidArgument):
		writeErr(w, http.StatusBadRequest, err.Error())

	default:
		if _, ok := checkout.StageOf(err); ok {
			writeErr(w, http.StatusInternalServerError, "failed to place order, please try again")
			return
		}
		writeErr(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// ============================================================
// Shared DTOs
// ============================================================

type cartLineDTO struct {
	ProductID   string `json:"productId"`
	VariantID   string `json:"variantId"`
	ProductName string `json:"productName"`
	Brand       string `json:"brand,omitempty"`
	Size        string `json:"size"`
	Color       string `json:"color"`
	Qty         int    `json:"qty"`
	UnitPrice   int64  `json:"unitPrice"`
	LineTotal   int64  `json:"lineTotal"`
}

type totalsDTO struct {
	Subtotal int64 `json:"subtotal"`
	Shipping int64 `json:"shipping"`
	Tax      int64 `json:"tax"`
	Total    int64 `json:"total"`
}

type cartViewDTO struct {
	Lines  []cartLineDTO `json:"lines"`
	Totals totalsDTO     `json:"totals"`
}

func toCartViewDTO(v usecase.CartView) cartViewDTO {
	lines := make([]cartLineDTO, 0, len(v.Lines))
	for _, l := range v.Lines {
		lines = append(lines, cartLineDTO{
			ProductID:   l.ProductID,
			VariantID:   l.VariantID,
			ProductName: l.ProductName,
			Brand:       l.Brand,
			Size:        l.Size,
			Color:       l.Color,
			Qty:         l.Qty,
			UnitPrice:   int64(l.UnitPrice),
			LineTotal:   int64(l.LineTotal),
		})
	}
	return cartViewDTO{
		Lines:  lines,
		Totals: toTotalsDTO(v.Totals),
	}
}

func toTotalsDTO(t pricing.Totals) totalsDTO {
	return totalsDTO{
		Subtotal: int64(t.Subtotal),
		Shipping: int64(t.Shipping),
		Tax:      int64(t.Tax),
		Total:    int64(t.Total),
	}
}
