package http

import (
	"net/http"

	"github.com/gogoldh/mobile-app/internal/catalog"
)

type ProductsHandler struct {
	catalog CatalogClient
}

func NewProductsHandler(client CatalogClient) *ProductsHandler {
	return &ProductsHandler{catalog: client}
}

// GET /api/v1/products?category=&search=&sort=
func (h *ProductsHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.Products(r.Context())
	if err != nil {
		respondError(w, http.StatusBadGateway, "catalog_unavailable", "product catalog is unavailable")
		return
	}

	query := r.URL.Query()
	products = catalog.FilterProducts(products, query.Get("category"), query.Get("search"))
	catalog.SortProducts(products, query.Get("sort"))

	respondJSON(w, http.StatusOK, products)
}
