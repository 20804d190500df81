package domain

import "time"

// Product is the normalized catalog record. The commerce API's raw response
// shapes never leave the catalog package; everything downstream sees this.
type Product struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Subtitle   string    `json:"subtitle,omitempty"`
	Price      float64   `json:"price"`
	ImageURL   string    `json:"image,omitempty"`
	Categories []string  `json:"categories"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}

// LineItem is one product-quantity pairing inside a cart or order snapshot.
// Quantity is never persisted below 1; an item reaching zero is removed.
type LineItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"image,omitempty"`
	Quantity int     `json:"quantity"`
}

// Order is an immutable snapshot of the cart taken at checkout time.
// Later cart mutations must not affect a stored order.
type Order struct {
	ID    string     `json:"id"`
	Date  time.Time  `json:"date"`
	Items []LineItem `json:"items"`
	Total float64    `json:"total"`
}

// LineItemFromProduct builds a new line item for the given product.
func LineItemFromProduct(p Product, quantity int) LineItem {
	if quantity < 1 {
		quantity = 1
	}
	return LineItem{
		ID:       p.ID,
		Title:    p.Title,
		Price:    p.Price,
		ImageURL: p.ImageURL,
		Quantity: quantity,
	}
}

// ItemsTotal computes the cart total over all line items.
func ItemsTotal(items []LineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// CopyItems returns a deep copy of the line item slice.
func CopyItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	copy(out, items)
	return out
}
