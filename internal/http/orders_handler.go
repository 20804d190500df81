package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gogoldh/mobile-app/internal/domain"
)

// OrderHistory is the slice of the order log the handlers consume.
type OrderHistory interface {
	List(ctx context.Context) ([]domain.Order, error)
	Get(ctx context.Context, id string) (*domain.Order, error)
	ClearAll(ctx context.Context) error
}

type OrdersHandler struct {
	log OrderHistory
}

func NewOrdersHandler(log OrderHistory) *OrdersHandler {
	return &OrdersHandler{log: log}
}

// GET /api/v1/orders
func (h *OrdersHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	all, err := h.log.List(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if all == nil {
		all = []domain.Order{}
	}
	respondJSON(w, http.StatusOK, all)
}

// GET /api/v1/orders/{order_id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		respondError(w, http.StatusBadRequest, "missing_order_id", "order_id is required")
		return
	}

	order, err := h.log.Get(r.Context(), orderID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// DELETE /api/v1/orders?confirm=true
//
// Clearing is all-or-nothing and irreversible, so the explicit confirm
// parameter is required; it is never assumed.
func (h *OrdersHandler) ClearOrders(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("confirm") != "true" {
		respondError(w, http.StatusBadRequest, "confirmation_required", "pass confirm=true to clear the order history")
		return
	}

	if err := h.log.ClearAll(r.Context()); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
