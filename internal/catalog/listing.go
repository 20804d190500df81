package catalog

import (
	"sort"
	"strings"

	"github.com/gogoldh/mobile-app/internal/domain"
)

// Sort keys accepted by SortProducts. SortNameAsc is the default.
const (
	SortNameAsc   = "name-asc"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortDateDesc  = "date-desc"
)

// FilterProducts narrows the list to one category id and/or a case-insensitive
// title substring. Empty arguments mean "no filter"; "all" matches every
// category.
func FilterProducts(products []domain.Product, categoryID, search string) []domain.Product {
	search = strings.ToLower(strings.TrimSpace(search))

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if categoryID != "" && categoryID != "all" && !hasCategory(p, categoryID) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Title), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func hasCategory(p domain.Product, categoryID string) bool {
	for _, c := range p.Categories {
		if c == categoryID {
			return true
		}
	}
	return false
}

// SortProducts orders the list in place by the given key. Unknown keys fall
// back to name ascending.
func SortProducts(products []domain.Product, key string) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortDateDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].UpdatedAt.After(products[j].UpdatedAt)
		})
	default:
		sort.SliceStable(products, func(i, j int) bool {
			return strings.ToLower(products[i].Title) < strings.ToLower(products[j].Title)
		})
	}
}
