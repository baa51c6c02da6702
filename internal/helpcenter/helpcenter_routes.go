package helpcenter

import (
	"github.com/sedirimou/Gameva-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	help := r.Group("/help/articles")
	help.Use(middleware.RateLimitByIP(10, 20))
	{
		help.GET("", handler.ListPublic)
		help.GET("/:slug", handler.GetBySlug)
	}

	admin := r.Group("/admin/help/articles")
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
	}
}
