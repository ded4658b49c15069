// internal/adapters/in/http/shop/handler/order_handler.go
package shopHandler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"atelier/internal/adapters/in/http/middleware"
	usecase "atelier/internal/application/usecase"
	orderdom "atelier/internal/domain/order"
	orderitem "atelier/internal/domain/orderItem"
)

// OrderHandler serves the signed-in user's order history.
//
// Routes (under /shop):
//   - GET /shop/me/orders          list own orders (?page=&perPage=)
//   - GET /shop/me/orders/{id}     order detail with items
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) http.Handler {
	return &OrderHandler{uc: uc}
}

func (h *OrderHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.uc == nil {
		writeErr(w, http.StatusInternalServerError, "order handler is not configured")
		return
	}
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	uid, ok := middleware.CurrentUID(r)
	if !ok {
		writeErr(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	path := strings.TrimRight(r.URL.Path, "/")

	if strings.HasSuffix(path, "/me/orders") {
		h.handleList(w, r, uid)
		return
	}

	if i := strings.LastIndex(path, "/me/orders/"); i >= 0 {
		orderID := path[i+len("/me/orders/"):]
		h.handleGet(w, r, uid, orderID)
		return
	}

	writeErr(w, http.StatusNotFound, "not found")
}

func (h *OrderHandler) handleList(w http.ResponseWriter, r *http.Request, uid string) {
	q := r.URL.Query()
	page := orderdom.Page{
		Number:  atoiOr(q.Get("page"), 1),
		PerPage: atoiOr(q.Get("perPage"), 0),
	}

	res, err := h.uc.ListForUser(r.Context(), uid, page)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}

	items := make([]orderSummaryDTO, 0, len(res.Items))
	for _, o := range res.Items {
		items = append(items, toOrderSummaryDTO(o))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"orders":     items,
		"totalCount": res.TotalCount,
		"totalPages": res.TotalPages,
		"page":       res.Page,
		"perPage":    res.PerPage,
	})
}

func (h *OrderHandler) handleGet(w http.ResponseWriter, r *http.Request, uid, orderID string) {
	detail, err := h.uc.GetForUser(r.Context(), uid, orderID)
	if err != nil {
		writeUsecaseErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderDetailDTO(detail))
}

func atoiOr(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

// -----------------------------------------
// DTOs
// -----------------------------------------

type orderSummaryDTO struct {
	ID            string    `json:"id"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"paymentMethod"`
	Totals        totalsDTO `json:"totals"`
	CreatedAt     time.Time `json:"createdAt"`
}

type orderItemDTO struct {
	ProductID   string `json:"productId"`
	VariantID   string `json:"variantId"`
	ProductName string `json:"productName"`
	Size        string `json:"size"`
	Color       string `json:"color"`
	Quantity    int    `json:"quantity"`
	UnitPrice   int64  `json:"unitPrice"`
	TotalPrice  int64  `json:"totalPrice"`
}

type shippingDTO struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country,omitempty"`
}

type orderDetailDTO struct {
	orderSummaryDTO
	ShippingAddress shippingDTO    `json:"shippingAddress"`
	Items           []orderItemDTO `json:"items"`
}

func toOrderSummaryDTO(o orderdom.Order) orderSummaryDTO {
	return orderSummaryDTO{
		ID:            o.ID,
		Status:        string(o.Status),
		PaymentMethod: string(o.PaymentMethod),
		Totals:        toTotalsDTO(o.Totals),
		CreatedAt:     o.CreatedAt,
	}
}

func toOrderItemDTO(it orderitem.OrderItem) orderItemDTO {
	return orderItemDTO{
		ProductID:   it.ProductID,
		VariantID:   it.VariantID,
		ProductName: it.ProductName,
		Size:        it.Size,
		Color:       it.Color,
		Quantity:    it.Quantity,
		UnitPrice:   int64(it.UnitPrice),
		TotalPrice:  int64(it.TotalPrice),
	}
}

func toOrderDetailDTO(d usecase.OrderDetail) orderDetailDTO {
	items := make([]orderItemDTO, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, toOrderItemDTO(it))
	}
	s := d.Order.ShippingSnapshot
	return orderDetailDTO{
		orderSummaryDTO: toOrderSummaryDTO(d.Order),
		ShippingAddress: shippingDTO{
			FullName: s.FullName,
			Email:    s.Email,
			Phone:    s.Phone,
			Address:  s.Address,
			City:     s.City,
			State:    s.State,
			ZipCode:  s.ZipCode,
			Country:  s.Country,
		},
		Items: items,
	}
}
