package cart

import (
	"net/http"

	"github.com/sedirimou/Gameva-sub001/internal/catalog"
	"github.com/sedirimou/Gameva-sub001/internal/currency"
	"github.com/sedirimou/Gameva-sub001/internal/pkg/response"
	"github.com/sedirimou/Gameva-sub001/internal/platform/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	provider store.Provider
	logger   *zap.Logger
}

func NewHandler(provider store.Provider, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{provider: provider, logger: logger}
}

func (h *Handler) manager(c *gin.Context) (*Manager, store.Store) {
	st := h.provider.ForSession(c.GetString("session_id"))
	return NewManager(st, h.logger), st
}

// collect gathers the notifications emitted during one request so they
// can be returned to the caller alongside the result.
func collect(m *Manager) (*[]Notification, func()) {
	notes := &[]Notification{}
	dispose := m.Notifier().Subscribe(func(n Notification) {
		*notes = append(*notes, n)
	})
	return notes, dispose
}

func (h *Handler) failure(c *gin.Context, notes []Notification) {
	for _, n := range notes {
		if n.Level == LevelError {
			response.Error(c, http.StatusConflict, "LIMIT_EXCEEDED", n.Message, nil)
			return
		}
	}
	response.Error(c, http.StatusServiceUnavailable, "STORAGE_UNAVAILABLE",
		"Cart storage is not available for this session", nil)
}

// GET /carts
func (h *Handler) Detail(c *gin.Context) {
	m, st := h.manager(c)
	items := m.Cart()

	subtotal := 0.0
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}

	response.Success(c, http.StatusOK, CartDetailResponse{
		Items:    items,
		Count:    m.CartCount(),
		Subtotal: currency.NewManager(st, h.logger).FormatPrice(subtotal),
	}, nil)
}

// GET /carts/count
func (h *Handler) Count(c *gin.Context) {
	m, _ := h.manager(c)
	response.Success(c, http.StatusOK, CartCountResponse{Count: m.CartCount()}, nil)
}

// POST /carts/items
func (h *Handler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid request body", err.Error())
		return
	}

	product, ok := catalog.Normalize(req.Product)
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Product has no stable identifier", nil)
		return
	}

	m, _ := h.manager(c)
	notes, dispose := collect(m)
	defer dispose()

	if !m.AddToCart(product, req.Quantity) {
		h.failure(c, *notes)
		return
	}

	response.Success(c, http.StatusCreated, CartDetailResponse{
		Items:         m.Cart(),
		Count:         m.CartCount(),
		Notifications: *notes,
	}, nil)
}

// PATCH /carts/items/:productId
func (h *Handler) UpdateQty(c *gin.Context) {
	var req UpdateQtyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid request body", err.Error())
		return
	}

	m, _ := h.manager(c)
	notes, dispose := collect(m)
	defer dispose()

	if !m.UpdateCartQuantity(c.Param("productId"), *req.Quantity) {
		for _, n := range *notes {
			if n.Level == LevelError {
				response.Error(c, http.StatusConflict, "LIMIT_EXCEEDED", n.Message, nil)
				return
			}
		}
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Cart item not found", nil)
		return
	}

	response.Success(c, http.StatusOK, CartDetailResponse{
		Items:         m.Cart(),
		Count:         m.CartCount(),
		Notifications: *notes,
	}, nil)
}

// DELETE /carts/items/:productId
func (h *Handler) DeleteItem(c *gin.Context) {
	m, _ := h.manager(c)
	notes, dispose := collect(m)
	defer dispose()

	if !m.RemoveFromCart(c.Param("productId")) {
		h.failure(c, *notes)
		return
	}

	response.Success(c, http.StatusOK, CartDetailResponse{
		Items:         m.Cart(),
		Count:         m.CartCount(),
		Notifications: *notes,
	}, nil)
}

// DELETE /carts
func (h *Handler) Clear(c *gin.Context) {
	m, _ := h.manager(c)
	if !m.ClearCart() {
		h.failure(c, nil)
		return
	}
	response.Success(c, http.StatusOK, nil, nil)
}

// GET /wishlists/items
func (h *Handler) WishlistList(c *gin.Context) {
	m, _ := h.manager(c)
	items := m.Wishlist()
	response.Success(c, http.StatusOK, WishlistResponse{
		Items:     items,
		ItemCount: len(items),
	}, nil)
}

// POST /wishlists/items
func (h *Handler) WishlistAdd(c *gin.Context) {
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid request body", err.Error())
		return
	}

	product, ok := catalog.Normalize(req.Product)
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Product has no stable identifier", nil)
		return
	}

	m, _ := h.manager(c)
	notes, dispose := collect(m)
	defer dispose()

	if !m.AddToWishlist(product) {
		h.failure(c, *notes)
		return
	}

	response.Success(c, http.StatusCreated, WishlistResponse{
		Items:         m.Wishlist(),
		ItemCount:     m.WishlistCount(),
		Notifications: *notes,
	}, nil)
}

// POST /wishlists/toggle
func (h *Handler) WishlistToggle(c *gin.Context) {
	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid request body", err.Error())
		return
	}

	product, ok := catalog.Normalize(req.Product)
	if !ok {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Product has no stable identifier", nil)
		return
	}

	m, _ := h.manager(c)
	notes, dispose := collect(m)
	defer dispose()

	result := m.ToggleWishlist(product)
	if !result.OK {
		h.failure(c, *notes)
		return
	}

	response.Success(c, http.StatusOK, ToggleResponse{
		Action:        result.Action,
		OK:            result.OK,
		ItemCount:     m.WishlistCount(),
		Notifications: *notes,
	}, nil)
}

// DELETE /wishlists/items/:productId
func (h *Handler) WishlistDelete(c *gin.Context) {
	m, _ := h.manager(c)
	notes, dispose := collect(m)
	defer dispose()

	if !m.RemoveFromWishlist(c.Param("productId")) {
		h.failure(c, *notes)
		return
	}

	response.Success(c, http.StatusOK, WishlistResponse{
		Items:         m.Wishlist(),
		ItemCount:     m.WishlistCount(),
		Notifications: *notes,
	}, nil)
}

// POST /wishlists/items/:productId/move-to-cart
func (h *Handler) MoveToCart(c *gin.Context) {
	m, _ := h.manager(c)
	notes, dispose := collect(m)
	defer dispose()

	if !m.MoveToCart(c.Param("productId")) {
		for _, n := range *notes {
			if n.Level == LevelError {
				response.Error(c, http.StatusConflict, "LIMIT_EXCEEDED", n.Message, nil)
				return
			}
		}
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Wishlist item not found", nil)
		return
	}

	response.Success(c, http.StatusOK, CartDetailResponse{
		Items:         m.Cart(),
		Count:         m.CartCount(),
		Notifications: *notes,
	}, nil)
}
