package db

import (
	"card_system/internal/domain" // Importing domain models

	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// Migrate performs automatic migration for the database schema
func Migrate(db *gorm.DB) error {
	// AutoMigrate will create tables, missing foreign keys, constraints, columns and indexes,
	// including the composite unique indexes on (user, card) and (deck, card)
	err := db.AutoMigrate(
		&domain.User{},
		&domain.Card{},
		&domain.InventoryItem{},
		&domain.Deck{},
		&domain.DeckCardItem{},
	)
	if err != nil {
		logrus.WithField("error", err.Error()).Error("migration failed") // Log migration failure
		return err
	}
	logrus.Info("Migration completed.") // Log successful migration
	return nil
}
