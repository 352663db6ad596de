package service

import (
	"context" // Request scoped cancellation
	"errors"  // Error matching

	"card_system/internal/domain" // Domain models and errors
	"card_system/internal/store"  // Persistence boundary

	"github.com/sirupsen/logrus" // Structured logging
)

// StarterDeckName names the deck given to the seeded account
const StarterDeckName = "Starter Deck"

// StarterCards picks up to perRole guards, thieves and curses, then up to
// perRole cards with no role. A card is picked at most once.
func StarterCards(catalog []domain.Card, perRole int) []domain.Card {
	picked := map[uint]bool{} // Card ids already taken
	var out []domain.Card
	take := func(match func(domain.Card) bool) {
		n := 0
		for _, card := range catalog {
			if n == perRole {
				return
			}
			if picked[card.ID] || !match(card) {
				continue
			}
			picked[card.ID] = true
			out = append(out, card)
			n++
		}
	}
	take(func(c domain.Card) bool { return c.Guard })
	take(func(c domain.Card) bool { return c.Thief })
	take(func(c domain.Card) bool { return c.Curse })
	take(func(c domain.Card) bool { return !c.Guard && !c.Thief && !c.Curse })
	return out
}

// SeedStarterAccount creates a demo account owning one copy of each starter
// card and a starter deck holding them, all in one transaction: a failure
// leaves no partial account behind. An existing account is left alone and
// reported with created false.
func (s *Service) SeedStarterAccount(ctx context.Context, username, email, password string) (domain.User, bool, error) {
	if err := domain.ValidateUsername(username); err != nil {
		return domain.User{}, false, err
	}
	if err := domain.ValidateEmail(email); err != nil {
		return domain.User{}, false, err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return domain.User{}, false, err
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.User{}, false, &domain.StorageError{Op: "hash credential", Err: err}
	}

	user := domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Wallet:       domain.ResolveWallet(nil, domain.WalletOnCreate), // Signup grant
	}
	deck := domain.Deck{Name: StarterDeckName, Volume: domain.DefaultDeckVolume}
	var starter []domain.Card
	err = s.store.WithTx(ctx, func(tx store.Store) error {
		if err := ensureAvailable(ctx, tx, 0, &username, &email); err != nil {
			return err
		}
		if err := tx.CreateUser(ctx, &user); err != nil {
			return conflictOr("create user", err)
		}
		catalog, err := tx.ListCards(ctx)
		if err != nil {
			return err
		}
		deck.UserID = user.ID // Owner id known after insert
		if err := tx.CreateDeck(ctx, &deck); err != nil {
			return err
		}
		starter = StarterCards(catalog, 5) // Up to five per role
		for _, card := range starter {
			if _, err := tx.MergeInventoryItem(ctx, user.ID, card.ID, 1); err != nil {
				return err
			}
			if _, err := tx.MergeDeckCardItem(ctx, deck.ID, card.ID, 1); err != nil {
				return err
			}
		}
		return nil
	})
	var cErr *domain.ConflictError // Account already exists
	if errors.As(err, &cErr) {
		logrus.WithField("username", username).Info("Starter account already present")
		return domain.User{}, false, nil
	}
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"username": username,
			"error":    err.Error(),
		}).Error("Starter account seed failed")
		return domain.User{}, false, storageErr("seed starter account", err)
	}
	s.invalidate(ctx, inventoryKey(user.ID))
	logrus.WithFields(logrus.Fields{
		"user_id": user.ID,
		"deck_id": deck.ID,
		"cards":   len(starter),
	}).Info("Starter account seeded")
	return user, true, nil
}
