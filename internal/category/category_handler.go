package category

import (
	"mime/multipart"
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

// GET /categories
func (h *Handler) ListPublic(c *gin.Context) {
	var query ListCategoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid query parameters", err.Error())
		return
	}

	data, total, err := h.service.ListPublic(c.Request.Context(), query.Page, query.Limit)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, data, response.NewPagination(query.Page, query.Limit, total))
}

// GET /admin/categories
func (h *Handler) ListAdmin(c *gin.Context) {
	var query ListCategoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid query parameters", err.Error())
		return
	}

	data, total, err := h.service.ListAdmin(c.Request.Context(), query)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, data, response.NewPagination(query.Page, query.Limit, total))
}

// GET /admin/categories/:id
func (h *Handler) GetByID(c *gin.Context) {
	res, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}

// POST /admin/categories
// Multipart form: name, description, cover (optional image file).
func (h *Handler) Create(c *gin.Context) {
	if err := c.Request.ParseMultipartForm(10 << 20); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_FORM", "Invalid multipart form", err.Error())
		return
	}

	req := CreateCategoryRequest{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
	}
	if req.Name == "" {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Missing required field: name", nil)
		return
	}

	var cover multipart.File
	var filename string
	if fileHeader, err := c.FormFile("cover"); err == nil && fileHeader != nil {
		cover, err = fileHeader.Open()
		if err != nil {
			response.Error(c, http.StatusBadRequest, "FILE_ERROR", "Failed to open uploaded file", err.Error())
			return
		}
		defer cover.Close()
		filename = fileHeader.Filename
	}

	res, err := h.service.Create(c.Request.Context(), req, cover, filename)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusCreated, res, nil)
}

// PATCH /admin/categories/:id
func (h *Handler) Update(c *gin.Context) {
	var req UpdateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_INPUT", "Invalid request body", err.Error())
		return
	}

	res, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}

// DELETE /admin/categories/:id
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}
	response.Success(c, http.StatusOK, nil, nil)
}

// PATCH /admin/categories/:id/restore
func (h *Handler) Restore(c *gin.Context) {
	res, err := h.service.Restore(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}
	response.Success(c, http.StatusOK, res, nil)
}
