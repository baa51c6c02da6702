package main

import (
	"log"

	"github.com/sedirimou/Gameva-sub001/internal/app"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	if err := app.RunConsumer(logger); err != nil {
		log.Fatal(err)
	}
}
