package cart_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sedirimou/Gameva-sub001/internal/cart"
	"github.com/sedirimou/Gameva-sub001/internal/platform/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	return c, w
}

func jsonRequest(method, path string, body any) *http.Request {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewBuffer(raw))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCartHandler_AddItem(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h := cart.NewHandler(store.NewMemoryProvider(), nil)
		c, w := newTestContext(t)
		c.Request = jsonRequest(http.MethodPost, "/carts/items", map[string]any{
			"product":  map[string]any{"id": "g1", "name": "Hades II", "price": 24.99},
			"quantity": 2,
		})
		c.Set("session_id", "s1")

		h.AddItem(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"count":2`)
		assert.Contains(t, w.Body.String(), "Hades II added to cart")
	})

	t.Run("error_missing_product_id", func(t *testing.T) {
		h := cart.NewHandler(store.NewMemoryProvider(), nil)
		c, w := newTestContext(t)
		c.Request = jsonRequest(http.MethodPost, "/carts/items", map[string]any{
			"product": map[string]any{"name": "no id"},
		})
		c.Set("session_id", "s1")

		h.AddItem(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("error_limit_exceeded", func(t *testing.T) {
		provider := store.NewMemoryProvider()
		h := cart.NewHandler(provider, nil)

		product := map[string]any{
			"id": "g1", "name": "Rare Key", "price": 9.99,
			"limit_per_basket": 1,
		}

		c, w := newTestContext(t)
		c.Request = jsonRequest(http.MethodPost, "/carts/items", map[string]any{"product": product})
		c.Set("session_id", "s1")
		h.AddItem(c)
		assert.Equal(t, http.StatusCreated, w.Code)

		c, w = newTestContext(t)
		c.Request = jsonRequest(http.MethodPost, "/carts/items", map[string]any{"product": product})
		c.Set("session_id", "s1")
		h.AddItem(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "LIMIT_EXCEEDED")
	})

	t.Run("error_no_session_storage", func(t *testing.T) {
		h := cart.NewHandler(store.NewMemoryProvider(), nil)
		c, w := newTestContext(t)
		c.Request = jsonRequest(http.MethodPost, "/carts/items", map[string]any{
			"product": map[string]any{"id": "g1", "name": "Hades II"},
		})
		// no session_id set: provider degrades to the unavailable store

		h.AddItem(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "STORAGE_UNAVAILABLE")
	})
}

func TestCartHandler_UpdateQty(t *testing.T) {
	provider := store.NewMemoryProvider()
	h := cart.NewHandler(provider, nil)

	seed := func(t *testing.T) {
		c, w := newTestContext(t)
		c.Request = jsonRequest(http.MethodPost, "/carts/items", map[string]any{
			"product":  map[string]any{"id": "g1", "name": "Hades II", "price": 24.99},
			"quantity": 1,
		})
		c.Set("session_id", "s-upd")
		h.AddItem(c)
		assert.Equal(t, http.StatusCreated, w.Code)
	}
	seed(t)

	t.Run("success", func(t *testing.T) {
		c, w := newTestContext(t)
		c.Request = jsonRequest(http.MethodPatch, "/carts/items/g1", map[string]any{"quantity": 4})
		c.Params = gin.Params{{Key: "productId", Value: "g1"}}
		c.Set("session_id", "s-upd")

		h.UpdateQty(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"count":4`)
	})

	t.Run("error_item_not_found", func(t *testing.T) {
		c, w := newTestContext(t)
		c.Request = jsonRequest(http.MethodPatch, "/carts/items/ghost", map[string]any{"quantity": 2})
		c.Params = gin.Params{{Key: "productId", Value: "ghost"}}
		c.Set("session_id", "s-upd")

		h.UpdateQty(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("error_missing_quantity", func(t *testing.T) {
		c, w := newTestContext(t)
		c.Request = jsonRequest(http.MethodPatch, "/carts/items/g1", map[string]any{})
		c.Params = gin.Params{{Key: "productId", Value: "g1"}}
		c.Set("session_id", "s-upd")

		h.UpdateQty(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCartHandler_Detail(t *testing.T) {
	provider := store.NewMemoryProvider()
	h := cart.NewHandler(provider, nil)

	c, _ := newTestContext(t)
	c.Request = jsonRequest(http.MethodPost, "/carts/items", map[string]any{
		"product":  map[string]any{"id": "g1", "name": "Hades II", "price": 10.0},
		"quantity": 2,
	})
	c.Set("session_id", "s-detail")
	h.AddItem(c)

	c, w := newTestContext(t)
	c.Request = httptest.NewRequest(http.MethodGet, "/carts", nil)
	c.Set("session_id", "s-detail")

	h.Detail(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"subtotal":"€20.00"`)
}

func TestWishlistHandler_ToggleAndMoveToCart(t *testing.T) {
	provider := store.NewMemoryProvider()
	h := cart.NewHandler(provider, nil)
	product := map[string]any{"id": "g1", "name": "Hades II", "price": 24.99}

	t.Run("toggle_adds_then_removes", func(t *testing.T) {
		c, w := newTestContext(t)
		c.Request = jsonRequest(http.MethodPost, "/wishlists/toggle", map[string]any{"product": product})
		c.Set("session_id", "s-w")
		h.WishlistToggle(c)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"action":"added"`)

		c, w = newTestContext(t)
		c.Request = jsonRequest(http.MethodPost, "/wishlists/toggle", map[string]any{"product": product})
		c.Set("session_id", "s-w")
		h.WishlistToggle(c)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"action":"removed"`)
	})

	t.Run("move_to_cart", func(t *testing.T) {
		c, _ := newTestContext(t)
		c.Request = jsonRequest(http.MethodPost, "/wishlists/items", map[string]any{"product": product})
		c.Set("session_id", "s-move")
		h.WishlistAdd(c)

		c, w := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodPost, "/wishlists/items/g1/move-to-cart", nil)
		c.Params = gin.Params{{Key: "productId", Value: "g1"}}
		c.Set("session_id", "s-move")

		h.MoveToCart(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"count":1`)
	})

	t.Run("move_to_cart_absent_item", func(t *testing.T) {
		c, w := newTestContext(t)
		c.Request = httptest.NewRequest(http.MethodPost, "/wishlists/items/ghost/move-to-cart", nil)
		c.Params = gin.Params{{Key: "productId", Value: "ghost"}}
		c.Set("session_id", "s-move")

		h.MoveToCart(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
