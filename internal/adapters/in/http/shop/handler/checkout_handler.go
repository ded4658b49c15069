// internal/adapters/in/http/shop/handler/checkout_handler.go
package shopHandler

import (
	"net/http"

	"atelier/internal/adapters/in/http/middleware"
	usecase "atelier/internal/application/usecase"
	orderdom "atelier/internal/domain/order"
)

// CheckoutHandler serves POST /shop/me/checkout.
type CheckoutHandler struct {
	uc *usecase.CheckoutUsecase
}

func NewCheckoutHandler(uc *usecase.CheckoutUsecase) http.Handler {
	return &CheckoutHandler{uc: uc}
}

type checkoutRequest struct {
	ShippingAddress struct {
		FullName string `json:"fullName"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Address  string `json:"address"`
		City     string `json:"city"`
		State    string `json:"state"`
		ZipCode  string `json:"zipCode"`
		Country  string `json:"country"`
	} `json:"shippingAddress"`
	PaymentMethod string `json:"paymentMethod"`
}

func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "checkout handler is not configured")
		return
	}
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	uid, ok := middleware.CurrentUID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid request body")
		return
	}

	in := usecase.PlaceOrderInput{
		ShippingAddress: orderdom.ShippingSnapshot{
			FullName: req.ShippingAddress.FullName,
			Email:    req.ShippingAddress.Email,
			Phone:    req.ShippingAddress.Phone,
			Address:  req.ShippingAddress.Address,
			City:     req.ShippingAddress.City,
			State:    req.ShippingAddress.State,
			ZipCode:  req.ShippingAddress.ZipCode,
			Country:  req.ShippingAddress.Country,
		},
		PaymentMethod: req.PaymentMethod,
	}

	orderID, err := h.uc.PlaceOrder(r.Context(), uid, in)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"orderId": orderID})
}
