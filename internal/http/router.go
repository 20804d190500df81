package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Products *ProductsHandler
	Cart     *CartHandler
	Checkout *CheckoutHandler
	Orders   *OrdersHandler
	Settings *SettingsHandler
}

// NewRouter wires the storefront API. requestTimeout bounds every request.
func NewRouter(h Handlers, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", h.Products.ListProducts)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.GetCart)
			r.Delete("/", h.Cart.ClearCart)
			r.Post("/items", h.Cart.AddItem)
			r.Post("/items/{product_id}/increment", h.Cart.Increment)
			r.Post("/items/{product_id}/decrement", h.Cart.Decrement)
			r.Delete("/items/{product_id}", h.Cart.RemoveItem)
			r.Post("/undo", h.Cart.UndoRemove)
		})

		r.Post("/checkout", h.Checkout.PlaceOrder)

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.Orders.ListOrders)
			r.Get("/{order_id}", h.Orders.GetOrder)
			r.Delete("/", h.Orders.ClearOrders)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Get("/", h.Settings.GetSettings)
			r.Put("/", h.Settings.UpdateSettings)
		})
	})

	return otelhttp.NewHandler(r, "storefront")
}
