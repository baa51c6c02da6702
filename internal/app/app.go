package app

import (
	"os"

	"github.com/sedirimou/Gameva-sub001/internal/email"
	"github.com/sedirimou/Gameva-sub001/internal/media"
	"github.com/sedirimou/Gameva-sub001/internal/platform/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func BuildApp(router *gin.Engine, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	// 1. Setup Infrastructure
	db, err := connectDBWithRetry(os.Getenv("DB_URL"), 5)
	if err != nil {
		return err
	}

	// Session state degrades to per-process memory when Redis is down;
	// the catalog and back office keep working either way.
	var sessions store.Provider
	redisClient, err := connectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		logger.Warn("redis unavailable, falling back to in-memory sessions", zap.Error(err))
		sessions = store.NewMemoryProvider()
	} else {
		sessions = store.NewRedisProvider(redisClient)
	}

	// 2. Setup Third Party Services
	var mediaService media.Service
	if os.Getenv("CLOUDINARY_CLOUD_NAME") != "" {
		mediaService, err = media.NewService(
			os.Getenv("CLOUDINARY_CLOUD_NAME"),
			os.Getenv("CLOUDINARY_API_KEY"),
			os.Getenv("CLOUDINARY_API_SECRET"),
			"gameva",
		)
		if err != nil {
			return err
		}
	} else {
		logger.Warn("cloudinary not configured, cover uploads disabled")
	}

	mailer, err := email.NewResendServiceFromEnv()
	if err != nil {
		logger.Warn("resend not configured, using noop mailer", zap.Error(err))
		mailer = email.NewNoopService()
	}

	// 3. Register Modules & Routes
	registerModules(router, moduleDeps{
		DB:       db,
		Sessions: sessions,
		Media:    mediaService,
		Mailer:   mailer,
		Logger:   logger,
	})

	return nil
}
