package service

import (
	"context" // Request scoped cancellation

	"card_system/internal/domain" // Domain models and errors
	"card_system/internal/store"  // Persistence boundary

	"github.com/sirupsen/logrus" // Structured logging
)

// AddToInventory gives a user quantity copies of a card. A second add of the
// same card accumulates onto the existing row.
func (s *Service) AddToInventory(ctx context.Context, userID, cardID uint, quantity int) (domain.InventoryItem, error) {
	if err := domain.ValidateDelta(quantity); err != nil {
		return domain.InventoryItem{}, err
	}
	var item domain.InventoryItem
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		if _, err := requireUser(ctx, tx, userID); err != nil {
			return err
		}
		if _, err := requireCard(ctx, tx, cardID); err != nil {
			return err
		}
		var err error
		item, err = tx.MergeInventoryItem(ctx, userID, cardID, quantity) // Insert or accumulate
		return err
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,
			"card_id":  cardID,
			"quantity": quantity,
			"error":    err.Error(),
		}).Error("Inventory add failed")
		return domain.InventoryItem{}, storageErr("add to inventory", err)
	}
	s.invalidate(ctx, inventoryKey(userID)) // Drop the cached listing
	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"card_id":  cardID,
		"added":    quantity,
		"quantity": item.Quantity,
	}).Info("Inventory add")
	return item, nil
}

// RemoveFromInventory takes quantity copies away. Removing at least the held
// amount deletes the row. It returns the quantity left.
func (s *Service) RemoveFromInventory(ctx context.Context, userID, cardID uint, quantity int) (int, error) {
	if err := domain.ValidateDelta(quantity); err != nil {
		return 0, err
	}
	var remaining int
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		if _, err := requireUser(ctx, tx, userID); err != nil {
			return err
		}
		var err error
		remaining, err = tx.DecrementInventoryItem(ctx, userID, cardID, quantity) // Deletes the row when nothing remains
		if err != nil {
			return lookupErr("remove from inventory", err, domain.CardNotInInventory, cardID)
		}
		return nil
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,
			"card_id":  cardID,
			"quantity": quantity,
			"error":    err.Error(),
		}).Error("Inventory removal failed")
		return 0, storageErr("remove from inventory", err)
	}
	s.invalidate(ctx, inventoryKey(userID))
	logrus.WithFields(logrus.Fields{
		"user_id":   userID,
		"card_id":   cardID,
		"removed":   quantity,
		"remaining": remaining,
	}).Info("Inventory removal")
	return remaining, nil
}

// ListInventory returns every card a user owns with its quantity
func (s *Service) ListInventory(ctx context.Context, userID uint) ([]domain.InventoryItem, error) {
	if _, err := requireUser(ctx, s.store, userID); err != nil {
		return nil, err
	}
	// Only holdings are cached; card attributes always come from the catalog
	items, err := cached(ctx, s, inventoryKey(userID), func() ([]domain.InventoryItem, error) {
		items, err := s.store.ListInventory(ctx, userID)
		if err != nil {
			return nil, storageErr("list inventory", err)
		}
		if items == nil {
			items = []domain.InventoryItem{} // Encode as [] rather than null
		}
		for i := range items {
			items[i].Card = domain.Card{} // Strip the preloaded definition
		}
		return items, nil
	})
	if err != nil {
		return nil, err
	}
	return s.joinCards(ctx, items)
}

// joinCards fills each holding with its current catalog definition
func (s *Service) joinCards(ctx context.Context, items []domain.InventoryItem) ([]domain.InventoryItem, error) {
	if len(items) == 0 {
		return items, nil
	}
	catalog, err := s.ListCards(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]domain.Card, len(catalog)) // Catalog indexed by card id
	for _, card := range catalog {
		byID[card.ID] = card
	}
	for i := range items {
		items[i].Card = byID[items[i].CardID] // Referenced cards survive reseeding
	}
	return items, nil
}

// GetInventoryItem returns the user's holding of one card
func (s *Service) GetInventoryItem(ctx context.Context, userID, cardID uint) (domain.InventoryItem, error) {
	if _, err := requireUser(ctx, s.store, userID); err != nil {
		return domain.InventoryItem{}, err
	}
	item, err := s.store.InventoryItem(ctx, userID, cardID) // Card preloaded
	if err != nil {
		return domain.InventoryItem{}, lookupErr("load inventory item", err, domain.CardNotInInventory, cardID)
	}
	return item, nil
}
