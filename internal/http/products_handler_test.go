package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogoldh/mobile-app/internal/domain"
)

func TestListProducts(t *testing.T) {
	h := NewProductsHandler(catalogFixture())

	rec := httptest.NewRecorder()
	h.ListProducts(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var products []domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Len(t, products, 2)
}

func TestListProducts_SearchAndSort(t *testing.T) {
	h := NewProductsHandler(catalogFixture())

	rec := httptest.NewRecorder()
	h.ListProducts(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products?sort=price-desc", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var products []domain.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 2)
	assert.Equal(t, "prod-1", products[0].ID, "highest price first")

	rec = httptest.NewRecorder()
	h.ListProducts(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products?search=ipa", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	products = nil
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	require.Len(t, products, 1)
	assert.Equal(t, "prod-2", products[0].ID)
}

func TestListProducts_CatalogDown(t *testing.T) {
	h := NewProductsHandler(&stubCatalog{err: fmt.Errorf("upstream down")})

	rec := httptest.NewRecorder()
	h.ListProducts(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
