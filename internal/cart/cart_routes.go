package cart

import (
	"github.com/sedirimou/Gameva-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	carts := r.Group("/carts")
	carts.Use(middleware.SessionMiddleware())
	{
		carts.GET("", handler.Detail)
		carts.GET("/count", handler.Count)
		carts.DELETE("", handler.Clear)

		carts.POST("/items", handler.AddItem)
		carts.PATCH("/items/:productId", handler.UpdateQty)
		carts.DELETE("/items/:productId", handler.DeleteItem)
	}

	wishlists := r.Group("/wishlists")
	wishlists.Use(middleware.SessionMiddleware())
	{
		wishlists.GET("/items", handler.WishlistList)
		wishlists.POST("/items", handler.WishlistAdd)
		wishlists.POST("/toggle", handler.WishlistToggle)
		wishlists.DELETE("/items/:productId", handler.WishlistDelete)
		wishlists.POST("/items/:productId/move-to-cart", handler.MoveToCart)
	}
}
