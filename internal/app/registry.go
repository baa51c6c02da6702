package app

import (
	"database/sql"

	"github.com/sedirimou/Gameva-sub001/internal/attribute"
	"github.com/sedirimou/Gameva-sub001/internal/cart"
	"github.com/sedirimou/Gameva-sub001/internal/catalog/images"
	"github.com/sedirimou/Gameva-sub001/internal/category"
	"github.com/sedirimou/Gameva-sub001/internal/email"
	"github.com/sedirimou/Gameva-sub001/internal/emailtemplate"
	"github.com/sedirimou/Gameva-sub001/internal/helpcenter"
	"github.com/sedirimou/Gameva-sub001/internal/media"
	"github.com/sedirimou/Gameva-sub001/internal/order"
	"github.com/sedirimou/Gameva-sub001/internal/outbox"
	"github.com/sedirimou/Gameva-sub001/internal/payment"
	"github.com/sedirimou/Gameva-sub001/internal/platform/store"
	"github.com/sedirimou/Gameva-sub001/internal/preferences"
	"github.com/sedirimou/Gameva-sub001/internal/product"
	"github.com/sedirimou/Gameva-sub001/internal/stripe"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type moduleDeps struct {
	DB       *sql.DB
	Sessions store.Provider
	Media    media.Service
	Mailer   email.Service
	Logger   *zap.Logger
}

func registerModules(router *gin.Engine, deps moduleDeps) {
	// --- Repositories ---
	productRepo := product.NewRepository(deps.DB)
	orderRepo := order.NewRepository(deps.DB)
	outboxRepo := outbox.NewRepository(deps.DB)
	categoryRepo := category.NewRepository(deps.DB)
	attributeRepo := attribute.NewRepository(deps.DB)
	templateRepo := emailtemplate.NewRepository(deps.DB)
	helpRepo := helpcenter.NewRepository(deps.DB)

	// --- Services ---
	productService := product.NewService(product.Deps{
		DB:     deps.DB,
		Repo:   productRepo,
		Logger: deps.Logger,
	})
	orderService := order.NewService(order.Deps{
		DB:         deps.DB,
		Repo:       orderRepo,
		OutboxRepo: outboxRepo,
		Logger:     deps.Logger,
	})
	stripeService := stripe.NewService()
	paymentService := payment.NewService(payment.Deps{
		Products: productService,
		Orders:   orderService,
		Stripe:   stripeService,
		Sessions: deps.Sessions,
		Logger:   deps.Logger,
	})
	categoryService := category.NewService(category.Deps{
		Repo:   categoryRepo,
		Media:  deps.Media,
		Logger: deps.Logger,
	})
	attributeService := attribute.NewService(attribute.Deps{
		Repo:   attributeRepo,
		Logger: deps.Logger,
	})
	templateService := emailtemplate.NewService(emailtemplate.Deps{
		Repo:   templateRepo,
		Mailer: deps.Mailer,
		Logger: deps.Logger,
	})
	helpService := helpcenter.NewService(helpcenter.Deps{
		Repo:   helpRepo,
		Logger: deps.Logger,
	})

	// --- Handlers ---
	cartHandler := cart.NewHandler(deps.Sessions, deps.Logger)
	preferencesHandler := preferences.NewHandler(deps.Sessions, deps.Logger)
	productHandler := product.NewHandler(productService)
	orderHandler := order.NewHandler(orderService)
	paymentHandler := payment.NewHandler(paymentService, deps.Logger)
	categoryHandler := category.NewHandler(categoryService)
	attributeHandler := attribute.NewHandler(attributeService)
	templateHandler := emailtemplate.NewHandler(templateService)
	helpHandler := helpcenter.NewHandler(helpService)
	proxyHandler := images.NewProxyHandler()

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		cart.RegisterRoutes(api, cartHandler)
		preferences.RegisterRoutes(api, preferencesHandler)
		product.RegisterRoutes(api, productHandler)
		order.RegisterRoutes(api, orderHandler)
		payment.RegisterRoutes(api, paymentHandler)
		category.RegisterRoutes(api, categoryHandler)
		attribute.RegisterRoutes(api, attributeHandler)
		emailtemplate.RegisterRoutes(api, templateHandler)
		helpcenter.RegisterRoutes(api, helpHandler)
		images.RegisterRoutes(api, proxyHandler)
	}
}
