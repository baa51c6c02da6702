package attribute

import (
	"github.com/sedirimou/Gameva-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	attrs := r.Group("/attributes")
	{
		attrs.GET("/:kind", middleware.RateLimitByIP(10, 20), handler.ListPublic)
	}

	admin := r.Group("/admin/attributes")
	admin.Use(
		middleware.AuthMiddleware(),
		middleware.RoleMiddleware("ADMIN", "SUPERADMIN"),
		middleware.RateLimitByUser(10, 20),
	)
	{
		admin.GET("/:kind", handler.ListAdmin)
		admin.POST("/:kind", handler.Create)
		admin.PATCH("/:kind/:id", handler.Update)
		admin.DELETE("/:kind/:id", handler.Delete)
	}
}
