package main

import (
	"context"
	"fmt"
	"log"

	"github.com/dimitrije/pickup-api/internal/config"
	"github.com/dimitrije/pickup-api/internal/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	fmt.Println("Schema is up to date:")
	fmt.Println("  - matches.invite_code (unique)")
	fmt.Println("  - participants.(match_id, user_id) (unique)")
	fmt.Println("  - matches.date, participants.match_id")
}
