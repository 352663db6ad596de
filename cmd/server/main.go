package main

import (
	"context" // context package is needed for Redis operations
	"time"    // Cache cleanup interval

	"card_system/internal/api"     // HTTP handlers and routes
	"card_system/internal/config"  // Configuration
	"card_system/internal/db"      // Database connection
	"card_system/internal/service" // Business operations
	"card_system/internal/store"   // Persistence
	"card_system/internal/utils"   // Hashing and caching

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg, err := config.LoadConfig() // Load configuration
	if err != nil {
		logrus.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.ValidateServer(); err != nil {
		logrus.Fatalf("invalid server config: %v", err)
	}

	// Setup logger
	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	gdb, err := db.Open(cfg.DBDriver, cfg.DSN(), !cfg.IsProd)
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	// Redis when configured, otherwise an in-process cache
	cache, err := utils.OpenCache(context.Background(), utils.CacheOptions{
		RedisAddr: cfg.RedisAddr,   // Redis server address
		RedisPass: cfg.RedisPass,   // Redis password
		RedisDB:   cfg.RedisDB,     // Redis database number
		Cleanup:   5 * time.Minute, // In-process sweep interval
	})
	if err != nil {
		logrus.Fatalf("failed to open cache: %v", err)
	}
	if cfg.RedisAddr == "" {
		logrus.Info("REDIS_ADDR not set, using in-process cache")
	}

	svc := service.New(store.NewGormStore(gdb), utils.NewBcryptHasher(cfg.BcryptCost), cache, cfg.CacheTTL)

	r, err := api.NewRouter(svc, api.RouterConfig{
		Tokens:         api.TokenIssuer{Secret: cfg.JWTSecret, TTL: cfg.JWTTTL},
		CORSOrigins:    cfg.CORSOrigins,
		TrustedProxies: []string{"127.0.0.1"},
	})
	if err != nil {
		logrus.Fatalf("failed to set up router: %v", err)
	}

	logrus.WithField("port", cfg.AppPort).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}
}
