// internal/platform/di/shop/register.go
package shop

import (
	"encoding/json"
	"log"
	"net/http"

	"atelier/internal/adapters/in/http/middleware"
	shophttp "atelier/internal/adapters/in/http/shop"
	shopHandler "atelier/internal/adapters/in/http/shop/handler"
)

// requireUserAuth wraps handler with UserAuthMiddleware (fail-closed).
// If middleware is not initialized, it returns 503 so the bug is obvious.
func requireUserAuth(mw *middleware.UserAuthMiddleware, h http.Handler, name string) http.Handler {
	if h == nil {
		h = http.NotFoundHandler()
	}
	if mw == nil || mw.FirebaseAuth == nil {
		log.Printf("[shop.register] ERROR: UserAuthMiddleware is not initialized (endpoint=%s). returning 503", name)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"error": "user_auth_not_initialized",
				"name":  name,
			})
		})
	}
	return mw.Handler(h)
}

// Register registers shop routes onto mux.
// Pure DI: construct handlers and pass into the shop router.
// - No method/path branching here
// - UserAuthMiddleware is applied to every /shop/me/* endpoint
func Register(mux *http.ServeMux, cont *Container) {
	if mux == nil || cont == nil {
		return
	}

	var userAuthMW *middleware.UserAuthMiddleware
	if cont.Infra != nil && cont.Infra.FirebaseAuth != nil {
		userAuthMW = &middleware.UserAuthMiddleware{
			FirebaseAuth: cont.Infra.FirebaseAuth,
		}
	} else {
		// fail-closed in requireUserAuth
		log.Printf("[shop.register] WARN: cont.Infra or cont.Infra.FirebaseAuth is nil (user auth will return 503 on protected endpoints)")
		userAuthMW = &middleware.UserAuthMiddleware{FirebaseAuth: nil}
	}

	catalogH := shopHandler.NewCatalogHandler(cont.CatalogUC, cont.ProductRepo)
	cartH := shopHandler.NewCartHandler(cont.CartUC)
	checkoutH := shopHandler.NewCheckoutHandler(cont.CheckoutUC)
	orderH := shopHandler.NewOrderHandler(cont.OrderUC)

	shophttp.Register(mux, shophttp.Deps{
		Catalog:  catalogH,
		Cart:     requireUserAuth(userAuthMW, cartH, "Cart"),
		Checkout: requireUserAuth(userAuthMW, checkoutH, "Checkout"),
		Order:    requireUserAuth(userAuthMW, orderH, "Order"),
	})
}
