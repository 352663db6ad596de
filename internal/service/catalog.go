package service

import (
	"context" // Request scoped cancellation

	"card_system/internal/domain" // Domain models and errors
	"card_system/internal/store"  // Persistence boundary

	"github.com/sirupsen/logrus" // Structured logging
)

// GetCard returns a catalog entry
func (s *Service) GetCard(ctx context.Context, id uint) (domain.Card, error) {
	return cached(ctx, s, cardKey(id), func() (domain.Card, error) {
		return requireCard(ctx, s.store, id)
	})
}

// ListCards returns the whole catalog ordered by id
func (s *Service) ListCards(ctx context.Context) ([]domain.Card, error) {
	return cached(ctx, s, catalogKey, func() ([]domain.Card, error) {
		cards, err := s.store.ListCards(ctx)
		if err != nil {
			return nil, storageErr("list cards", err)
		}
		if cards == nil { // Encode as [] rather than null
			cards = []domain.Card{}
		}
		return cards, nil
	})
}

// SeedCatalog replaces the catalog with cards. Entries still referenced by an
// inventory or a deck are kept.
func (s *Service) SeedCatalog(ctx context.Context, cards []domain.Card) error {
	for _, card := range cards {
		if err := card.Validate(); err != nil {
			return err
		}
	}
	var previous []domain.Card
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		var err error
		if previous, err = tx.ListCards(ctx); err != nil { // Ids to invalidate
			return err
		}
		return tx.ReplaceCards(ctx, cards)
	})
	if err != nil {
		logrus.WithField("error", err.Error()).Error("Catalog seed failed")
		return storageErr("seed catalog", err)
	}

	keys := []string{catalogKey} // Catalog listing plus every touched card
	for _, card := range previous {
		keys = append(keys, cardKey(card.ID))
	}
	for _, card := range cards {
		if card.ID != 0 {
			keys = append(keys, cardKey(card.ID))
		}
	}
	s.invalidate(ctx, keys...)
	logrus.WithField("cards", len(cards)).Info("Catalog seeded")
	return nil
}
