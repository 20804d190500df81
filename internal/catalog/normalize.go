package catalog

import (
	"encoding/json"
	"time"

	"github.com/gogoldh/mobile-app/internal/domain"
)

// The commerce API has served the collection under two envelope keys over
// time; both are accepted.
type wireEnvelope struct {
	Items    []wireItem `json:"items"`
	Products []wireItem `json:"products"`
}

type wireItem struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Image       *wireImage        `json:"image"`
	CategoryIDs []json.RawMessage `json:"categoryIds"`
	CreatedOn   string            `json:"createdOn"`
	UpdatedOn   string            `json:"updatedOn"`
	Product     *wireProduct      `json:"product"`
	SKUs        []wireSKU         `json:"skus"`
}

type wireProduct struct {
	ID          string            `json:"id"`
	FieldData   wireFieldData     `json:"fieldData"`
	CategoryIDs []json.RawMessage `json:"categoryIds"`
	CreatedOn   string            `json:"createdOn"`
	UpdatedOn   string            `json:"updatedOn"`
}

type wireFieldData struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    json.RawMessage `json:"category"`
}

type wireSKU struct {
	FieldData wireSKUFieldData `json:"fieldData"`
}

type wireSKUFieldData struct {
	Price     wirePrice  `json:"price"`
	MainImage *wireImage `json:"main-image"`
}

// Price value arrives in the currency's minor unit (cents).
type wirePrice struct {
	Value int64 `json:"value"`
}

type wireImage struct {
	URL string `json:"url"`
}

func normalize(envelope wireEnvelope) []domain.Product {
	items := envelope.Items
	if len(items) == 0 {
		items = envelope.Products
	}

	products := make([]domain.Product, 0, len(items))
	for _, item := range items {
		products = append(products, normalizeItem(item))
	}
	return products
}

func normalizeItem(item wireItem) domain.Product {
	p := domain.Product{
		ID:       item.ID,
		Title:    item.Name,
		Subtitle: item.Description,
	}

	if item.Product != nil {
		if item.Product.ID != "" {
			p.ID = item.Product.ID
		}
		if item.Product.FieldData.Name != "" {
			p.Title = item.Product.FieldData.Name
		}
		if item.Product.FieldData.Description != "" {
			p.Subtitle = item.Product.FieldData.Description
		}
	}

	if len(item.SKUs) > 0 {
		sku := item.SKUs[0].FieldData
		p.Price = float64(sku.Price.Value) / 100
		if sku.MainImage != nil && sku.MainImage.URL != "" {
			p.ImageURL = sku.MainImage.URL
		}
	}
	if p.ImageURL == "" && item.Image != nil {
		p.ImageURL = item.Image.URL
	}

	p.Categories = normalizeCategories(item)
	p.UpdatedAt = firstTimestamp(item)
	return p
}

// normalizeCategories flattens whichever category shape the response carries:
// a top-level categoryIds list, the nested product's list, or a single
// fieldData.category value. Entries may be plain strings, {id: ...} objects,
// or nested arrays of either.
func normalizeCategories(item wireItem) []string {
	raw := item.CategoryIDs
	if len(raw) == 0 && item.Product != nil {
		raw = item.Product.CategoryIDs
	}
	if len(raw) == 0 && item.Product != nil && len(item.Product.FieldData.Category) > 0 {
		raw = []json.RawMessage{item.Product.FieldData.Category}
	}

	ids := make([]string, 0, len(raw))
	for _, entry := range raw {
		ids = append(ids, categoryIDs(entry)...)
	}
	return ids
}

func categoryIDs(raw json.RawMessage) []string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return []string{s}
	}

	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.ID != "" {
		return []string{obj.ID}
	}

	var nested []json.RawMessage
	if err := json.Unmarshal(raw, &nested); err == nil {
		var ids []string
		for _, entry := range nested {
			ids = append(ids, categoryIDs(entry)...)
		}
		return ids
	}

	return nil
}

func firstTimestamp(item wireItem) time.Time {
	candidates := []string{item.UpdatedOn, item.CreatedOn}
	if item.Product != nil {
		candidates = append(candidates, item.Product.UpdatedOn, item.Product.CreatedOn)
	}
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if t, err := time.Parse(time.RFC3339, c); err == nil {
			return t
		}
	}
	return time.Time{}
}
