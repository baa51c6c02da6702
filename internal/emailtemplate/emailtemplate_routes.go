package emailtemplate

import (
	"github.com/sedirimou/Gameva-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	admin := r.Group("/admin/email-templates")
	admin.Use(
		middleware.AuthMiddleware(),
		middleware.RoleMiddleware("ADMIN", "SUPERADMIN"),
		middleware.RateLimitByUser(10, 20),
	)
	{
		admin.GET("", handler.List)
		admin.GET("/:id", handler.GetByID)
		admin.POST("", handler.Create)
		admin.PATCH("/:id", handler.Update)
		admin.DELETE("/:id", handler.Delete)
		admin.POST("/:id/test-send", middleware.RateLimitByUser(0.2, 2), handler.TestSend)
	}
}
