package main

// Run database migrations:
//   go run ./cmd/migrate

import (
	"context"
	"log"
	"os"

	"github.com/tmnguyen/portfolio-api/adapters/persistence"
	"github.com/tmnguyen/portfolio-api/internal/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("failed to load config: %v", err)
		os.Exit(1)
	}
	if cfg.DB.DSN == "" {
		log.Println("DB_DSN is empty, nothing to migrate")
		os.Exit(1)
	}

	if err := persistence.RunMigrations(context.Background(), cfg.DB.DSN); err != nil {
		log.Printf("failed to run migrations: %v", err)
		os.Exit(1)
	}
	log.Println("migrations applied")
}
