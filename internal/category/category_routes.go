package category

import (
	"github.com/sedirimou/Gameva-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	categories := r.Group("/categories")
	{
		categories.GET("", middleware.RateLimitByIP(10, 20), handler.ListPublic)
	}

	admin := r.Group("/admin/categories")
	admin.Use(
		middleware.AuthMiddleware(),
		middleware.RoleMiddleware("ADMIN", "SUPERADMIN"),
		middleware.RateLimitByUser(10, 20),
	)
	{
		admin.GET("", handler.ListAdmin)
		admin.GET("/:id", handler.GetByID)
		admin.POST("", handler.Create)
		admin.PATCH("/:id", handler.Update)
		admin.DELETE("/:id", handler.Delete)
		admin.PATCH("/:id/restore", handler.Restore)
	}
}
