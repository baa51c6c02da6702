package order

import (
	"github.com/sedirimou/Gameva-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	orders := r.Group("/orders")
	orders.Use(middleware.SessionMiddleware())
	{
		orders.GET("", middleware.RateLimitByIP(5, 10), handler.List)
		orders.GET("/:id", middleware.RateLimitByIP(5, 10), handler.Detail)
	}
}
