package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sedirimou/Gameva-sub001/internal/email"
	"github.com/sedirimou/Gameva-sub001/internal/emailtemplate"
	"github.com/sedirimou/Gameva-sub001/internal/messaging/kafka/consumer"
	"github.com/sedirimou/Gameva-sub001/internal/product"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func RunConsumer(logger *zap.Logger) error {
	log.Println("[CONSUMER] Starting consumers...")

	if logger == nil {
		logger = zap.NewNop()
	}

	// 1. Connect to database
	db, err := connectDBWithRetry(os.Getenv("DB_URL"), 5)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Println("[CONSUMER] Database connected")

	// 2. Setup services
	productService := product.NewService(product.Deps{
		DB:     db,
		Repo:   product.NewRepository(db),
		Logger: logger,
	})

	mailer, err := email.NewResendServiceFromEnv()
	if err != nil {
		log.Printf("[CONSUMER] Resend not configured, using noop mailer: %v", err)
		mailer = email.NewNoopService()
	}
	templateService := emailtemplate.NewService(emailtemplate.Deps{
		Repo:   emailtemplate.NewRepository(db),
		Mailer: mailer,
		Logger: logger,
	})

	// 3. Setup Kafka readers
	broker := os.Getenv("KAFKA_BROKER")

	importReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{broker},
		Topic:   "catalog.import.events",
		GroupID: "catalog-import-group",
	})
	defer importReader.Close()

	orderReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: []string{broker},
		Topic:   "order.events",
		GroupID: "order-notification-group",
	})
	defer orderReader.Close()
	log.Println("[CONSUMER] Kafka readers initialized")

	// 4. Start consuming
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.StartImportConsumer(ctx, importReader, productService)
	go consumer.StartNotificationConsumer(ctx, orderReader, templateService, mailer)

	// 5. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[CONSUMER] Shutting down...")
	cancel()
	log.Println("[CONSUMER] Stopped")

	return nil
}
