package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/gogoldh/mobile-app/internal/cart"
	"github.com/gogoldh/mobile-app/internal/checkout"
	"github.com/gogoldh/mobile-app/internal/orders"
	"github.com/gogoldh/mobile-app/internal/settings"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cartStore := cart.NewStore(cart.DefaultUndoWindow)
	orderLog := orders.NewLog(orders.NewMemoryStore())
	cat := catalogFixture()

	return NewRouter(Handlers{
		Products: NewProductsHandler(cat),
		Cart:     NewCartHandler(cartStore, cat),
		Checkout: NewCheckoutHandler(checkout.NewService(cartStore, orderLog)),
		Orders:   NewOrdersHandler(orderLog),
		Settings: NewSettingsHandler(settings.NewStore()),
	}, 30*time.Second)
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_Routes(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/api/v1/products", http.StatusOK},
		{http.MethodGet, "/api/v1/cart", http.StatusOK},
		{http.MethodGet, "/api/v1/orders", http.StatusOK},
		{http.MethodGet, "/api/v1/settings", http.StatusOK},
		{http.MethodGet, "/api/v1/nope", http.StatusNotFound},
	}

	router := newTestRouter(t)
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
