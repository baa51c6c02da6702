package product

import (
	"github.com/sedirimou/Gameva-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	products := r.Group("/products")
	{
		// Loose enough for real browsing, tight enough to slow scrapers.
		products.GET("",
			middleware.RateLimitByIP(10, 20),
			handler.GetPublicList,
		)

		// Detail hits heavier queries than the list.
		products.GET("/:slug",
			middleware.RateLimitByIP(5, 10),
			handler.GetBySlug,
		)

		// Batch rehydration is called on every cart/wishlist page load.
		products.POST("/batch",
			middleware.RateLimitByIP(10, 20),
			handler.Batch,
		)
	}
}
