package main

import (
	"context"       // Seeding context
	"encoding/json" // Card file decoding
	"os"            // Reading the card file
	"time"          // Cache cleanup interval

	"card_system/internal/config"  // Configuration
	"card_system/internal/db"      // Database connection and schema
	"card_system/internal/domain"  // Card model
	"card_system/internal/service" // Business operations
	"card_system/internal/store"   // Persistence
	"card_system/internal/utils"   // Hashing and caching

	"github.com/sirupsen/logrus" // Structured logging
)

// Main entry point for seeding the catalog and the demo account
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}

	raw, err := os.ReadFile(cfg.SeedFile)
	if err != nil {
		logrus.Fatalf("failed to read %s: %v", cfg.SeedFile, err)
	}
	var cards []domain.Card
	if err := json.Unmarshal(raw, &cards); err != nil {
		logrus.Fatalf("failed to decode %s: %v", cfg.SeedFile, err)
	}

	gdb, err := db.Open(cfg.DBDriver, cfg.DSN(), false)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		logrus.Fatalf("migration failed: %v", err)
	}

	ctx := context.Background()
	// Same backend as the server so catalog invalidations reach it
	cache, err := utils.OpenCache(ctx, utils.CacheOptions{
		RedisAddr: cfg.RedisAddr,
		RedisPass: cfg.RedisPass,
		RedisDB:   cfg.RedisDB,
		Cleanup:   time.Minute,
	})
	if err != nil {
		logrus.Fatalf("failed to open cache: %v", err)
	}
	if cfg.RedisAddr == "" {
		logrus.Warn("REDIS_ADDR not set, a running server keeps its cached catalog until CACHE_TTL")
	}
	svc := service.New(store.NewGormStore(gdb), utils.NewBcryptHasher(cfg.BcryptCost), cache, cfg.CacheTTL)

	if err := svc.SeedCatalog(ctx, cards); err != nil {
		logrus.Fatalf("failed to seed cards: %v", err)
	}
	if _, _, err := svc.SeedStarterAccount(ctx, "testuser", "test@example.com", "password"); err != nil {
		logrus.Fatalf("failed to seed starter account: %v", err)
	}
	logrus.WithField("cards", len(cards)).Info("Seeding complete")
}
