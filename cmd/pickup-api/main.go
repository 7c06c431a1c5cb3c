package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dimitrije/pickup-api/internal/cache"
	"github.com/dimitrije/pickup-api/internal/config"
	"github.com/dimitrije/pickup-api/internal/database"
	"github.com/dimitrije/pickup-api/internal/handlers"
	identitymw "github.com/dimitrije/pickup-api/internal/middleware"
	"github.com/dimitrije/pickup-api/internal/services"
	"github.com/dimitrije/pickup-api/internal/sse"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
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

	var statsCache services.StatsCache
	if cfg.Redis.Enabled() {
		client, err := cache.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		defer client.Close()
		statsCache = cache.NewStatsCache(client, cfg.Redis.StatsTTL)
		log.Printf("Stats cache enabled (ttl %s)", cfg.Redis.StatsTTL)
	}

	identityService := services.NewIdentityService(cfg.IdentitySecret, cfg.IdentityExpiry)
	membershipService := services.NewMembershipService(db)
	matchService := services.NewMatchService(db, membershipService)
	statsService := services.NewStatsService(db, statsCache)
	inviteService := services.NewInviteService(matchService)

	hub := sse.NewHub()
	go hub.Run()

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")
	api.Use(identitymw.Identity(identityService))

	handlers.RegisterRoutes(api, &handlers.Handlers{
		Match:      handlers.NewMatchHandler(matchService, inviteService, statsService, hub),
		Membership: handlers.NewMembershipHandler(membershipService, statsService, hub),
		Stats:      handlers.NewStatsHandler(statsService),
		Events:     handlers.NewEventsHandler(hub, matchService),
		Identity:   handlers.NewIdentityHandler(identityService),
	})

	if cfg.PruneAfter > 0 {
		go func() {
			ticker := time.NewTicker(24 * time.Hour)
			for range ticker.C {
				n, err := matchService.PruneBefore(context.Background(), time.Now().Add(-cfg.PruneAfter))
				if err != nil {
					log.Printf("Failed to prune matches: %v", err)
					continue
				}
				if n > 0 {
					statsService.Invalidate(context.Background())
					log.Printf("Pruned %d old matches", n)
				}
			}
		}()
	}

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}
