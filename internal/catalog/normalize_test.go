package catalog_test

import (
	"testing"

	"github.com/sedirimou/Gameva-sub001/internal/catalog"
	"github.com/sedirimou/Gameva-sub001/internal/catalog/images"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_NumericAndStringIDs(t *testing.T) {
	p, ok := catalog.Normalize(map[string]any{"id": "abc-123", "name": "Elden Ring"})
	assert.True(t, ok)
	assert.Equal(t, "abc-123", p.ID)

	// JSON numbers decode as float64
	p, ok = catalog.Normalize(map[string]any{"id": float64(99), "name": "DOOM"})
	assert.True(t, ok)
	assert.Equal(t, "99", p.ID)

	p, ok = catalog.Normalize(map[string]any{"productId": "p-1"})
	assert.True(t, ok)
	assert.Equal(t, "p-1", p.ID)
}

func TestNormalize_MissingIDRejected(t *testing.T) {
	_, ok := catalog.Normalize(map[string]any{"name": "no id"})
	assert.False(t, ok)

	_, ok = catalog.Normalize(nil)
	assert.False(t, ok)

	_, ok = catalog.Normalize(map[string]any{"id": "   "})
	assert.False(t, ok)
}

func TestNormalize_PricePriorityOrder(t *testing.T) {
	p, _ := catalog.Normalize(map[string]any{
		"id":           "1",
		"price":        29.99,
		"sale_price":   24.99,
		"sellingPrice": 22.99,
		"finalPrice":   19.99,
	})
	assert.Equal(t, 19.99, p.Price)
	assert.Equal(t, 29.99, p.OriginalPrice)

	p, _ = catalog.Normalize(map[string]any{
		"id":    "2",
		"price": "14.50", // numeric strings are tolerated
	})
	assert.Equal(t, 14.5, p.Price)
	assert.Equal(t, 14.5, p.OriginalPrice)
}

func TestNormalize_BasketLimitAndPlatform(t *testing.T) {
	p, _ := catalog.Normalize(map[string]any{
		"id":               "1",
		"platform":         "Steam",
		"limit_per_basket": float64(3),
	})
	assert.Equal(t, "Steam", p.Platform)
	assert.Equal(t, 3, p.LimitPerBasket)

	p, _ = catalog.Normalize(map[string]any{"id": "2", "limitPerBasket": 5})
	assert.Equal(t, 5, p.LimitPerBasket)
}

func TestNormalize_ImageFallsBackToPlaceholder(t *testing.T) {
	p, _ := catalog.Normalize(map[string]any{"id": "1"})
	assert.Equal(t, images.Placeholder, p.Image)

	p, _ = catalog.Normalize(map[string]any{
		"id":    "2",
		"image": "https://example.com/cover.jpg",
	})
	assert.Equal(t, "https://example.com/cover.jpg", p.Image)
}
