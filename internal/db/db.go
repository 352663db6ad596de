package db

import (
	"fmt"  // Error formatting
	"time" // Connection lifetimes

	"gorm.io/driver/mysql"    // MySQL driver for GORM
	"gorm.io/driver/postgres" // Postgres driver for GORM
	"gorm.io/driver/sqlite"   // SQLite dialect for GORM
	"gorm.io/gorm"            // GORM ORM library
	"gorm.io/gorm/logger"     // GORM logger levels

	_ "modernc.org/sqlite" // Pure-Go SQLite driver registered as "sqlite"
)

// Open connects to the database selected by driver
func Open(driver, dsn string, debug bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		return OpenSQLite(dsn, debug)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	db, err := gorm.Open(dialector, gormConfig(debug))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(50)                  // Pool size
	sqlDB.SetConnMaxLifetime(10 * time.Minute) // Recycle connections
	return db, nil
}

// OpenSQLite opens a SQLite database through the pure-Go driver.
// SQLite serializes writers, so the pool is pinned to one connection; this
// also keeps ":memory:" databases alive for the lifetime of the handle.
func OpenSQLite(dsn string, debug bool) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.New(sqlite.Config{
		DriverName: "sqlite", // modernc.org/sqlite
		DSN:        dsn,
	}), gormConfig(debug))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// gormConfig builds the shared GORM configuration
func gormConfig(debug bool) *gorm.Config {
	level := logger.Silent // Avoid logging every query in production
	if debug {
		level = logger.Info
	}
	return &gorm.Config{
		Logger:         logger.Default.LogMode(level),
		TranslateError: true, // Map driver errors to gorm.ErrDuplicatedKey and friends
	}
}
