package service

import (
	"context" // Request scoped cancellation

	"card_system/internal/domain" // Domain models and errors
	"card_system/internal/store"  // Persistence boundary

	"github.com/sirupsen/logrus" // Structured logging
)

// CreateDeck adds a named deck for a user
func (s *Service) CreateDeck(ctx context.Context, userID uint, name string, volume int) (domain.Deck, error) {
	if err := domain.ValidateDeckName(name); err != nil {
		return domain.Deck{}, err
	}
	if err := domain.ValidateDeckVolume(volume); err != nil {
		return domain.Deck{}, err
	}
	deck := domain.Deck{UserID: userID, Name: name, Volume: volume} // ID filled in by CreateDeck
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		if _, err := requireUser(ctx, tx, userID); err != nil {
			return err
		}
		return tx.CreateDeck(ctx, &deck)
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"name":    name,
			"error":   err.Error(),
		}).Error("Deck creation failed")
		return domain.Deck{}, storageErr("create deck", err)
	}
	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"deck_id": deck.ID,
		"volume":  deck.Volume,
	}).Info("Deck created")
	return deck, nil
}

// GetDeck returns a deck owned by userID
func (s *Service) GetDeck(ctx context.Context, userID, deckID uint) (domain.Deck, error) {
	if _, err := requireUser(ctx, s.store, userID); err != nil {
		return domain.Deck{}, err
	}
	return requireOwnedDeck(ctx, s.store, userID, deckID)
}

// ListDecks returns every deck of a user
func (s *Service) ListDecks(ctx context.Context, userID uint) ([]domain.Deck, error) {
	if _, err := requireUser(ctx, s.store, userID); err != nil {
		return nil, err
	}
	decks, err := s.store.ListDecks(ctx, userID)
	if err != nil {
		return nil, storageErr("list decks", err)
	}
	if decks == nil { // Encode as [] rather than null
		decks = []domain.Deck{}
	}
	return decks, nil
}

// UpdateDeck renames a deck or changes its volume
func (s *Service) UpdateDeck(ctx context.Context, userID, deckID uint, update domain.DeckUpdate) (domain.Deck, error) {
	if err := update.Validate(); err != nil {
		return domain.Deck{}, err
	}
	changes := map[string]any{}
	if update.Name != nil {
		changes["name"] = *update.Name
	}
	if update.Volume != nil {
		changes["volume"] = *update.Volume
	}

	var deck domain.Deck
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		if _, err := requireUser(ctx, tx, userID); err != nil {
			return err
		}
		var err error
		if deck, err = requireOwnedDeck(ctx, tx, userID, deckID); err != nil {
			return err
		}
		if len(changes) == 0 {
			return nil
		}
		if err := tx.UpdateDeck(ctx, deckID, changes); err != nil {
			return err
		}
		deck, err = requireOwnedDeck(ctx, tx, userID, deckID)
		return err
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"deck_id": deckID,
			"error":   err.Error(),
		}).Error("Deck update failed")
		return domain.Deck{}, storageErr("update deck", err)
	}
	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"deck_id": deckID,
	}).Info("Deck updated")
	return deck, nil
}

// DeleteDeck removes a deck and its contents
func (s *Service) DeleteDeck(ctx context.Context, userID, deckID uint) error {
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		if _, err := requireUser(ctx, tx, userID); err != nil {
			return err
		}
		if _, err := requireOwnedDeck(ctx, tx, userID, deckID); err != nil {
			return err
		}
		if err := tx.DeleteDeckCardsByDeck(ctx, deckID); err != nil { // Contents before the deck
			return err
		}
		if err := tx.DeleteDeck(ctx, deckID); err != nil {
			return lookupErr("delete deck", err, domain.DeckNotFound, deckID)
		}
		return nil
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"deck_id": deckID,
			"error":   err.Error(),
		}).Error("Deck deletion failed")
		return storageErr("delete deck", err)
	}
	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"deck_id": deckID,
	}).Info("Deck deleted")
	return nil
}

// AddCardToDeck puts quantity copies of an owned card into a deck. The chain
// user, deck ownership, card, inventory is checked in that order. The
// inventory quantity is left untouched: decks reference owned cards rather
// than consume them.
func (s *Service) AddCardToDeck(ctx context.Context, userID, deckID, cardID uint, quantity int) (domain.DeckCardItem, error) {
	if err := domain.ValidateDelta(quantity); err != nil {
		return domain.DeckCardItem{}, err
	}
	var item domain.DeckCardItem
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		if _, err := requireUser(ctx, tx, userID); err != nil {
			return err
		}
		if _, err := requireOwnedDeck(ctx, tx, userID, deckID); err != nil {
			return err
		}
		if _, err := requireCard(ctx, tx, cardID); err != nil {
			return err
		}
		if _, err := tx.InventoryItem(ctx, userID, cardID); err != nil { // Must own the card, quantity is not consumed
			return lookupErr("load inventory item", err, domain.CardNotInInventory, cardID)
		}
		var err error
		item, err = tx.MergeDeckCardItem(ctx, deckID, cardID, quantity) // Insert or accumulate
		return err
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,
			"deck_id":  deckID,
			"card_id":  cardID,
			"quantity": quantity,
			"error":    err.Error(),
		}).Error("Deck add failed")
		return domain.DeckCardItem{}, storageErr("add card to deck", err)
	}
	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"deck_id":  deckID,
		"card_id":  cardID,
		"quantity": item.Quantity,
	}).Info("Deck add")
	return item, nil
}

// ListDeckCards returns the deck contents with full card definitions
func (s *Service) ListDeckCards(ctx context.Context, userID, deckID uint) ([]domain.DeckCardItem, error) {
	if _, err := requireUser(ctx, s.store, userID); err != nil {
		return nil, err
	}
	if _, err := requireOwnedDeck(ctx, s.store, userID, deckID); err != nil {
		return nil, err
	}
	items, err := s.store.ListDeckCards(ctx, deckID)
	if err != nil {
		return nil, storageErr("list deck cards", err)
	}
	if items == nil { // Encode as [] rather than null
		items = []domain.DeckCardItem{}
	}
	return items, nil
}
