package attribute

import (
	"net/http"

	"github.com/sedirimou/Gameva-sub001/internal/pkg/apperror"
	"github.com/sedirimou/Gameva-sub001/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func bindListQuery(c *gin.Context) (ListAttributeQuery, bool) {
	var query ListAttributeQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid query parameters", err.Error())
		return query, false
	}
	return query, true
}

// GET /attributes/:kind
func (h *Handler) ListPublic(c *gin.Context) {
	query, ok := bindListQuery(c)
	if !ok {
		return
	}

	data, total, err := h.service.ListPublic(c.Request.Context(), c.Param("kind"), query)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, data, response.NewPagination(query.Page, query.Limit, total))
}

// GET /admin/attributes/:kind
func (h *Handler) ListAdmin(c *gin.Context) {
	query, ok := bindListQuery(c)
	if !ok {
		return
	}

	data, total, err := h.service.ListAdmin(c.Request.Context(), c.Param("kind"), query)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, data, response.NewPagination(query.Page, query.Limit, total))
}

// POST /admin/attributes/:kind
func (h *Handler) Create(c *gin.Context) {
	var req CreateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid request body", err.Error())
		return
	}

	res, err := h.service.Create(c.Request.Context(), c.Param("kind"), req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusCreated, res, nil)
}

// PATCH /admin/attributes/:kind/:id
func (h *Handler) Update(c *gin.Context) {
	var req UpdateAttributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid request body", err.Error())
		return
	}

	res, err := h.service.Update(c.Request.Context(), c.Param("kind"), c.Param("id"), req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

// DELETE /admin/attributes/:kind/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("kind"), c.Param("id")); err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}
	response.Success(c, http.StatusOK, nil, nil)
}
