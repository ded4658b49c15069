// internal/adapters/in/http/shop/router.go
package shop

import (
	"log"
	"net/http"
)

// Deps is the storefront handler set.
type Deps struct {
	Catalog  http.Handler
	Cart     http.Handler
	Checkout http.Handler
	Order    http.Handler
}

// handleSafe registers pattern with h. A nil handler logs and falls back to
// NotFoundHandler so a partially wired container still serves.
func handleSafe(mux *http.ServeMux, pattern string, h http.Handler, name string) {
	if h == nil {
		log.Printf("[shop.router] WARN: nil handler: %s pattern=%s (registering NotFoundHandler)", name, pattern)
		h = http.NotFoundHandler()
	}
	mux.Handle(pattern, h)
}

// Register registers storefront routes onto mux.
func Register(mux *http.ServeMux, deps Deps) {
	if mux == nil {
		return
	}

	// catalog (public)
	handleSafe(mux, "/shop/products", deps.Catalog, "Catalog")
	handleSafe(mux, "/shop/products/", deps.Catalog, "Catalog")

	// cart (authenticated)
	handleSafe(mux, "/shop/me/cart", deps.Cart, "Cart")
	handleSafe(mux, "/shop/me/cart/", deps.Cart, "Cart")

	// checkout (authenticated)
	handleSafe(mux, "/shop/me/checkout", deps.Checkout, "Checkout")

	// orders (authenticated)
	handleSafe(mux, "/shop/me/orders", deps.Order, "Order")
	handleSafe(mux, "/shop/me/orders/", deps.Order, "Order")
}
