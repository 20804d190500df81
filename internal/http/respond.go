package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gogoldh/mobile-app/internal/checkout"
	"github.com/gogoldh/mobile-app/internal/orders"
	"github.com/gogoldh/mobile-app/internal/settings"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// respondServiceError maps the core error taxonomy onto HTTP statuses.
func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, orders.ErrEmptyCart):
		respondError(w, http.StatusConflict, "empty_cart", "cart is empty")
	case errors.Is(err, orders.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "not_found", "order not found")
	case errors.Is(err, orders.ErrStorage):
		// The cart survives a storage failure; the client may retry.
		respondError(w, http.StatusServiceUnavailable, "storage_unavailable", "order storage unavailable, please retry")
	case errors.Is(err, settings.ErrUnsupportedLanguage):
		respondError(w, http.StatusBadRequest, "unsupported_language", "language must be one of: nl, en")
	case errors.Is(err, checkout.ErrMissingName),
		errors.Is(err, checkout.ErrMissingEmail),
		errors.Is(err, checkout.ErrMissingAddress):
		respondError(w, http.StatusBadRequest, "invalid_customer", err.Error())
	default:
		log.Printf("internal error: %v", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
