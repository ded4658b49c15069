// internal/adapters/in/http/shop/handler/cart_handler.go
package shopHandler

import (
	"net/http"
	"strings"

	"atelier/internal/adapters/in/http/middleware"
	usecase "atelier/internal/application/usecase"
)

// CartHandler serves the signed-in user's cart.
//
// Routes (under /shop):
//   - GET    /shop/me/cart                     render cart with live prices
//   - DELETE /shop/me/cart                     clear cart
//   - POST   /shop/me/cart/items               add {productId, variantId, qty}
//   - PUT    /shop/me/cart/items               set qty {variantId, qty}
//   - DELETE /shop/me/cart/items/{variantId}   remove line
type CartHandler struct {
	uc *usecase.CartUsecase
}

func NewCartHandler(uc *usecase.CartUsecase) http.Handler {
	return &CartHandler{uc: uc}
}

func (h *CartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "cart handler is not configured")
		return
	}

	uid, ok := middleware.CurrentUID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")

	switch {
	case r.Method == http.MethodGet && strings.HasSuffix(path, "/me/cart"):
		h.handleGet(w, r, uid)

	case r.Method == http.MethodDelete && strings.HasSuffix(path, "/me/cart"):
		h.handleClear(w, r, uid)

	case r.Method == http.MethodPost && strings.HasSuffix(path, "/me/cart/items"):
		h.handleAddItem(w, r, uid)

	case r.Method == http.MethodPut && strings.HasSuffix(path, "/me/cart/items"):
		h.handleSetQty(w, r, uid)

	case r.Method == http.MethodDelete && strings.Contains(path, "/me/cart/items/"):
		variantID := path[strings.LastIndex(path, "/")+1:]
		h.handleRemoveItem(w, r, uid, variantID)

	default:
		writeErr(w, http.StatusNotFound, "not found")
	}
}

func (h *CartHandler) handleGet(w http.ResponseWriter, r *http.Request, uid string) {
	view, err := h.uc.Get(r.Context(), uid)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartViewDTO(view))
}

func (h *CartHandler) handleAddItem(w http.ResponseWriter, r *http.Request, uid string) {
	var req struct {
		ProductID string `json:"productId"`
		VariantID string `json:"variantId"`
		Qty       int    `json:"qty"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.uc.AddItem(r.Context(), uid, req.ProductID, req.VariantID, req.Qty)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartViewDTO(view))
}

func (h *CartHandler) handleSetQty(w http.ResponseWriter, r *http.Request, uid string) {
	var req struct {
		VariantID string `json:"variantId"`
		Qty       int    `json:"qty"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.uc.SetQty(r.Context(), uid, req.VariantID, req.Qty)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartViewDTO(view))
}

func (h *CartHandler) handleRemoveItem(w http.ResponseWriter, r *http.Request, uid, variantID string) {
	view, err := h.uc.RemoveItem(r.Context(), uid, variantID)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartViewDTO(view))
}

func (h *CartHandler) handleClear(w http.ResponseWriter, r *http.Request, uid string) {
	if err := h.uc.Clear(r.Context(), uid); err != nil {
		writeUsecaseErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
