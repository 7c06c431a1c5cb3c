package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/dimitrije/pickup-api/internal/config"
	"github.com/dimitrije/pickup-api/internal/database"
	"github.com/dimitrije/pickup-api/internal/services"
)

func main() {
	if len(os.Args) > 2 {
		fmt.Println("Usage: prune-matches [days]")
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	keep := cfg.PruneAfter
	if len(os.Args) == 2 {
		days, err := strconv.Atoi(os.Args[1])
		if err != nil || days < 1 {
			log.Fatalf("Invalid number of days: %s", os.Args[1])
		}
		keep = time.Duration(days) * 24 * time.Hour
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	matches := services.NewMatchService(db, services.NewMembershipService(db))

	cutoff := time.Now().Add(-keep)
	n, err := matches.PruneBefore(ctx, cutoff)
	if err != nil {
		log.Fatalf("Failed to prune matches: %v", err)
	}

	fmt.Printf("Deleted %d matches dated before %s\n", n, cutoff.Format("2006-01-02"))
}
