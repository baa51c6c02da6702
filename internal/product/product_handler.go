package product

import (
	"net/http"

	"github.com/sedirimou/Gameva-sub001/internal/pkg/apperror"
	"github.com/sedirimou/Gameva-sub001/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	productService Service
}

func NewHandler(productService Service) *Handler {
	return &Handler{productService: productService}
}

// GET /products
func (h *Handler) GetPublicList(c *gin.Context) {
	var q ListPublicQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_QUERY", "Invalid query parameters", err.Error())
		return
	}

	req := ListPublicRequest{
		Page:     q.Page,
		Limit:    q.Limit,
		Search:   q.Search,
		Platform: q.Platform,
		MinPrice: q.MinPrice,
		MaxPrice: q.MaxPrice,
		SortBy:   q.SortBy,
		SortDir:  q.SortDir,
	}

	data, total, err := h.productService.ListPublic(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", "Failed to fetch products", err.Error())
		return
	}

	response.Success(c, http.StatusOK, data, response.NewPagination(q.Page, q.Limit, total))
}

// GET /products/:slug
func (h *Handler) GetBySlug(c *gin.Context) {
	res, err := h.productService.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

// POST /products/batch
//
// The storefront persists only product IDs locally; this endpoint
// rehydrates them, including per-item basket limits.
func (h *Handler) Batch(c *gin.Context) {
	var req BatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid request body", err.Error())
		return
	}

	res, err := h.productService.Batch(c.Request.Context(), req.IDs)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}
