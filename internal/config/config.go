package config

import (
	"errors"  // For validation errors
	"fmt"     // For error wrapping
	"strings" // For trimming values
	"time"    // For durations

	"github.com/caarlos0/env/v11" // For parsing environment variables into the struct
	"github.com/joho/godotenv"    // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort     string        `env:"APP_PORT" envDefault:"5555"`                                       // Application port
	DBDriver    string        `env:"DB_DRIVER" envDefault:"mysql"`                                     // mysql, postgres or sqlite
	DBDSN       string        `env:"DB_DSN"`                                                           // Full DSN, overrides the parts below
	DBUser      string        `env:"DB_USER"`                                                          // Database user
	DBPassword  string        `env:"DB_PASSWORD"`                                                      // Database password
	DBHost      string        `env:"DB_HOST" envDefault:"127.0.0.1"`                                   // Database host
	DBPort      string        `env:"DB_PORT"`                                                          // Database port
	DBName      string        `env:"DB_NAME" envDefault:"card_system"`                                 // Database name
	JWTSecret   string        `env:"JWT_SECRET"`                                                      // JWT secret key, required by the server only
	JWTTTL      time.Duration `env:"JWT_TTL" envDefault:"24h"`                                         // Token lifetime
	RedisAddr   string        `env:"REDIS_ADDR"`                                                       // Redis server address, empty for in-process cache
	RedisPass   string        `env:"REDIS_PASS"`                                                       // Redis password
	RedisDB     int           `env:"REDIS_DB" envDefault:"0"`                                          // Redis database number
	CacheTTL    time.Duration `env:"CACHE_TTL" envDefault:"60s"`                                       // Read cache lifetime
	BcryptCost  int           `env:"BCRYPT_COST" envDefault:"10"`                                      // Password hashing cost
	CORSOrigins []string      `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"` // Allowed browser origins
	IsProd      bool          `env:"IS_PROD" envDefault:"false"`                                       // Is production environment
	SeedFile    string        `env:"SEED_FILE" envDefault:"data/cards.json"`                           // Card catalog seed file
}

// LoadConfig loads configuration from the environment, reading .env first if present
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}

// ValidateServer checks the settings only the HTTP server needs. Batch
// commands (migrate, seed) never sign tokens and skip it.
func (c *Config) ValidateServer() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return errors.New("JWT_SECRET is required") // Tokens cannot be signed without it
	}
	return nil
}

// DSN returns the data source name for the configured driver
func (c *Config) DSN() string {
	if c.DBDSN != "" {
		return c.DBDSN // Explicit DSN wins
	}
	switch c.DBDriver {
	case "postgres":
		port := c.DBPort
		if port == "" {
			port = "5432"
		}
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, port)
	case "sqlite":
		return c.DBName + ".db" // File next to the binary
	default:
		port := c.DBPort
		if port == "" {
			port = "3306"
		}
		return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + port + ")/" + c.DBName + "?parseTime=true"
	}
}
