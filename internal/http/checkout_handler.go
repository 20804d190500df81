package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gogoldh/mobile-app/internal/checkout"
)

type CheckoutHandler struct {
	service *checkout.Service
}

func NewCheckoutHandler(service *checkout.Service) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

type CheckoutRequestDTO struct {
	Customer       *checkout.CustomerDetails `json:"customer,omitempty"`
	IdempotencyKey string                    `json:"idempotency_key,omitempty"`
}

// POST /api/v1/checkout
//
// An empty body is a plain "order the cart" request; customer details and the
// idempotency key are optional.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	order, err := h.service.PlaceOrder(r.Context(), checkout.Request{
		Customer:       req.Customer,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, order)
}
