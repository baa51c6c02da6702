package preferences

import (
	"github.com/sedirimou/Gameva-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	prefs := r.Group("/user/preferences")
	prefs.Use(middleware.SessionMiddleware())
	{
		prefs.GET("", handler.Get)
		prefs.POST("", handler.Update)
	}
}
