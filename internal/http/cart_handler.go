package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/gogoldh/mobile-app/internal/cart"
	"github.com/gogoldh/mobile-app/internal/domain"
)

// CatalogClient is the slice of the catalog boundary the handlers consume.
type CatalogClient interface {
	Products(ctx context.Context) ([]domain.Product, error)
}

type CartHandler struct {
	cart    *cart.Store
	catalog CatalogClient
}

func NewCartHandler(cartStore *cart.Store, catalog CatalogClient) *CartHandler {
	return &CartHandler{
		cart:    cartStore,
		catalog: catalog,
	}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CartResponseDTO struct {
	Items []domain.LineItem `json:"items"`
	Total float64           `json:"total"`
}

func cartResponse(items []domain.LineItem) CartResponseDTO {
	if items == nil {
		items = []domain.LineItem{}
	}
	return CartResponseDTO{
		Items: items,
		Total: domain.ItemsTotal(items),
	}
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, cartResponse(h.cart.Items()))
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.ProductID == "" {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id is required")
		return
	}
	if req.Quantity < 1 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	product, ok, err := h.findProduct(r.Context(), req.ProductID)
	if err != nil {
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "product catalog is unavailable")
		return
	}
	if !ok {
		respondError(w, http.StatusNotFound, "unknown_product", "product not found in catalog")
		return
	}

	items := h.cart.Add(product, req.Quantity)
	respondJSON(w, http.StatusCreated, cartResponse(items))
}

// POST /api/v1/cart/items/{product_id}/increment
func (h *CartHandler) Increment(w http.ResponseWriter, r *http.Request) {
	h.cart.Increment(chi.URLParam(r, "product_id"))
	respondJSON(w, http.StatusOK, cartResponse(h.cart.Items()))
}

// POST /api/v1/cart/items/{product_id}/decrement
func (h *CartHandler) Decrement(w http.ResponseWriter, r *http.Request) {
	h.cart.Decrement(chi.URLParam(r, "product_id"))
	respondJSON(w, http.StatusOK, cartResponse(h.cart.Items()))
}

// DELETE /api/v1/cart/items/{product_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "product_id")
	if _, ok := h.cart.Remove(productID); !ok {
		respondError(w, http.StatusNotFound, "not_found", "item not in cart")
		return
	}
	respondJSON(w, http.StatusOK, cartResponse(h.cart.Items()))
}

// POST /api/v1/cart/undo
func (h *CartHandler) UndoRemove(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.cart.UndoRemove(); !ok {
		respondError(w, http.StatusConflict, "nothing_to_undo", "no removal to undo")
		return
	}
	respondJSON(w, http.StatusOK, cartResponse(h.cart.Items()))
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	h.cart.Clear()
	respondJSON(w, http.StatusOK, cartResponse(h.cart.Items()))
}

func (h *CartHandler) findProduct(ctx context.Context, id string) (domain.Product, bool, error) {
	products, err := h.catalog.Products(ctx)
	if err != nil {
		return domain.Product{}, false, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, true, nil
		}
	}
	return domain.Product{}, false, nil
}
