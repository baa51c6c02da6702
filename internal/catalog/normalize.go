// Package catalog defines the canonical product shape used by the cart,
// wishlist and checkout layers, and the single normalization point that
// maps raw upstream feed rows into it. Upstream data is duck-typed: IDs
// arrive as strings or numbers, prices under four different names, images
// in half a dozen encodings. Nothing past Normalize ever sees that mess.
package catalog

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/sedirimou/Gameva-sub001/internal/catalog/images"
)

type Product struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	OriginalPrice  float64 `json:"originalPrice"`
	Image          string  `json:"image"`
	Platform       string  `json:"platform"`
	LimitPerBasket int     `json:"limit_per_basket,omitempty"`
}

// priceKeys is the documented priority order for reading a selling price
// out of an arbitrary upstream shape. A discounted "final" price always
// beats the base price.
var priceKeys = []string{"finalPrice", "sellingPrice", "sale_price", "price"}

// Normalize maps one raw upstream row into the canonical Product. It
// returns false only when the row has no stable identifier — everything
// else falls back to zero values or the image placeholder.
func Normalize(raw map[string]any) (Product, bool) {
	if raw == nil {
		return Product{}, false
	}

	id, ok := normalizeID(raw)
	if !ok {
		return Product{}, false
	}

	p := Product{
		ID:       id,
		Name:     firstString(raw, "name", "title"),
		Image:    images.ResolveCoverImage(raw),
		Platform: firstString(raw, "platform"),
	}

	for _, key := range priceKeys {
		if v, ok := asFloat(raw[key]); ok {
			p.Price = v
			break
		}
	}

	if v, ok := asFloat(raw["originalPrice"]); ok {
		p.OriginalPrice = v
	} else if v, ok := asFloat(raw["original_price"]); ok {
		p.OriginalPrice = v
	} else if v, ok := asFloat(raw["price"]); ok {
		p.OriginalPrice = v
	} else {
		p.OriginalPrice = p.Price
	}

	if v, ok := asFloat(raw["limit_per_basket"]); ok {
		p.LimitPerBasket = int(v)
	} else if v, ok := asFloat(raw["limitPerBasket"]); ok {
		p.LimitPerBasket = int(v)
	}

	return p, true
}

// normalizeID accepts id/productId/product_id as either a string or a
// number; source rows are inconsistent about both name and type.
func normalizeID(raw map[string]any) (string, bool) {
	for _, key := range []string{"id", "productId", "product_id"} {
		switch v := raw[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s, true
			}
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64), true
		case int:
			return strconv.Itoa(v), true
		case int64:
			return strconv.FormatInt(v, 10), true
		case json.Number:
			return v.String(), true
		}
	}
	return "", false
}

func firstString(raw map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := raw[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
