package payment

import (
	"github.com/sedirimou/Gameva-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	checkout := r.Group("/checkout")
	{
		intents := checkout.Group("")
		intents.Use(middleware.SessionMiddleware())
		// Tight limit: double-clicks on "Pay" should not mint a pile of
		// pending orders.
		intents.POST("/payment-intent", middleware.RateLimitByIP(1, 3), handler.CreateIntent)

		// Stripe calls this one; no session, no rate limit.
		checkout.POST("/webhook", handler.Webhook)
	}
}
