package order

import (
	"net/http"
	"strconv"

	"github.com/sedirimou/Gameva-sub001/internal/pkg/apperror"
	"github.com/sedirimou/Gameva-sub001/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	orderService Service
}

func NewHandler(orderService Service) *Handler {
	return &Handler{orderService: orderService}
}

// GET /orders
func (h *Handler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	sessionID := c.GetString("session_id")
	if sessionID == "" {
		response.Success(c, http.StatusOK, []OrderResponse{}, response.NewPagination(page, limit, 0))
		return
	}

	data, total, err := h.orderService.ListBySession(c.Request.Context(), sessionID, page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_ERROR", "Failed to fetch orders", err.Error())
		return
	}

	response.Success(c, http.StatusOK, data, response.NewPagination(page, limit, total))
}

// GET /orders/:id
func (h *Handler) Detail(c *gin.Context) {
	res, err := h.orderService.Detail(c.Request.Context(), c.Param("id"), c.GetString("session_id"))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	response.Success(c, http.StatusOK, res, nil)
}
