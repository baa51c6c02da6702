package main

import (
	"database/sql"
	"log"
	"os"

	"github.com/sedirimou/Gameva-sub001/internal/shared/database/seed"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	_ = godotenv.Load()

	db, err := sql.Open("postgres", os.Getenv("DB_URL"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	if err := seed.SeedAttributes(db); err != nil {
		log.Fatalf("Failed to seed attributes: %v", err)
	}
	if err := seed.SeedEmailTemplates(db); err != nil {
		log.Fatalf("Failed to seed email templates: %v", err)
	}

	log.Println("Seed complete")
}
