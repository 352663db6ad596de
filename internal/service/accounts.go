package service

import (
	"context" // Request scoped cancellation
	"errors"  // Error matching
	"strings" // Index name matching

	"card_system/internal/domain" // Domain models and errors
	"card_system/internal/store"  // Persistence boundary

	"github.com/sirupsen/logrus" // Structured logging
)

// CreateUser registers an account. The wallet always starts at the signup grant.
func (s *Service) CreateUser(ctx context.Context, username, email, password string) (domain.User, error) {
	if err := domain.ValidateUsername(username); err != nil {
		return domain.User{}, err
	}
	if err := domain.ValidateEmail(email); err != nil {
		return domain.User{}, err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return domain.User{}, err
	}
	hash, err := s.hasher.Hash(password) // Hash the credential
	if err != nil {
		return domain.User{}, &domain.StorageError{Op: "hash credential", Err: err}
	}

	user := domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Wallet:       domain.ResolveWallet(nil, domain.WalletOnCreate), // Signup grant
	}
	err = s.store.WithTx(ctx, func(tx store.Store) error {
		if err := ensureAvailable(ctx, tx, 0, &username, &email); err != nil {
			return err
		}
		if err := tx.CreateUser(ctx, &user); err != nil {
			return conflictOr("create user", err)
		}
		return nil
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"username": username,
			"error":    err.Error(),
		}).Error("User creation failed")
		return domain.User{}, storageErr("create user", err)
	}
	logrus.WithFields(logrus.Fields{
		"user_id":  user.ID,
		"username": user.Username,
	}).Info("User created")
	return user, nil
}

// GetUser loads an account by id
func (s *Service) GetUser(ctx context.Context, id uint) (domain.User, error) {
	return requireUser(ctx, s.store, id)
}

// ListUsers returns the public view of every account
func (s *Service) ListUsers(ctx context.Context) ([]domain.UserSummary, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, storageErr("list users", err)
	}
	summaries := make([]domain.UserSummary, 0, len(users)) // Encode as [] when empty
	for _, u := range users {
		summaries = append(summaries, u.Summary())
	}
	return summaries, nil
}

// UpdateUser applies a partial update. Wallet values are coerced and clamped,
// passwords are re-hashed, username and email are validated and must stay unique.
func (s *Service) UpdateUser(ctx context.Context, id uint, update domain.UserUpdate) (domain.User, error) {
	changes := map[string]any{} // Column updates
	if update.Username != nil {
		if err := domain.ValidateUsername(*update.Username); err != nil {
			return domain.User{}, err
		}
		changes["username"] = *update.Username
	}
	if update.Email != nil {
		if err := domain.ValidateEmail(*update.Email); err != nil {
			return domain.User{}, err
		}
		changes["email"] = *update.Email
	}
	if update.Password != nil {
		if err := domain.ValidatePassword(*update.Password); err != nil {
			return domain.User{}, err
		}
		hash, err := s.hasher.Hash(*update.Password)
		if err != nil {
			return domain.User{}, &domain.StorageError{Op: "hash credential", Err: err}
		}
		changes["password_hash"] = hash
	}
	if update.Wallet != nil {
		changes["wallet"] = domain.ResolveWallet(update.Wallet.Raw, domain.WalletOnUpdate) // Coerced and clamped
	}

	var user domain.User
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		var err error
		if user, err = requireUser(ctx, tx, id); err != nil {
			return err
		}
		if len(changes) == 0 { // Nothing to write
			return nil
		}
		if err := ensureAvailable(ctx, tx, id, update.Username, update.Email); err != nil {
			return err
		}
		if err := tx.UpdateUser(ctx, id, changes); err != nil {
			return conflictOr("update user", err)
		}
		user, err = requireUser(ctx, tx, id)
		return err
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": id,
			"error":   err.Error(),
		}).Error("User update failed")
		return domain.User{}, storageErr("update user", err)
	}
	logrus.WithFields(logrus.Fields{
		"user_id": id,
		"fields":  len(changes),
		"wallet":  user.Wallet,
	}).Info("User updated")
	return user, nil
}

// DeleteUser removes an account together with its inventory, decks and deck
// contents in one transaction
func (s *Service) DeleteUser(ctx context.Context, id uint) error {
	err := s.store.WithTx(ctx, func(tx store.Store) error {
		if _, err := requireUser(ctx, tx, id); err != nil {
			return err
		}
		if err := tx.DeleteDeckCardsByUser(ctx, id); err != nil { // Deck contents first, then decks
			return err
		}
		if err := tx.DeleteDecksByUser(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteInventoryByUser(ctx, id); err != nil {
			return err
		}
		if err := tx.DeleteUser(ctx, id); err != nil {
			return lookupErr("delete user", err, domain.UserNotFound, id)
		}
		return nil
	})
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"user_id": id,
			"error":   err.Error(),
		}).Error("User deletion failed")
		return storageErr("delete user", err)
	}
	s.invalidate(ctx, inventoryKey(id)) // Drop the cached inventory
	logrus.WithField("user_id", id).Info("User deleted")
	return nil
}

// Authenticate reports whether candidate matches the user's stored credential
func (s *Service) Authenticate(user domain.User, candidate string) bool {
	return s.hasher.Verify(user.PasswordHash, candidate)
}

// Login resolves an account by email and checks its credential
func (s *Service) Login(ctx context.Context, email, password string) (domain.User, error) {
	user, err := s.store.UserByEmail(ctx, email)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, domain.ErrInvalidCredentials // Unknown email reads as a wrong password
	}
	if err != nil {
		return domain.User{}, storageErr("load user", err)
	}
	if !s.Authenticate(user, password) {
		return domain.User{}, domain.ErrInvalidCredentials
	}
	return user, nil
}

// ensureAvailable rejects a username or email already held by another account
func ensureAvailable(ctx context.Context, tx store.Store, selfID uint, username, email *string) error {
	if username != nil {
		other, err := tx.UserByUsername(ctx, *username)
		switch {
		case err == nil && other.ID != selfID:
			return &domain.ConflictError{Field: "username"}
		case err != nil && !errors.Is(err, store.ErrNotFound):
			return err
		}
	}
	if email != nil {
		other, err := tx.UserByEmail(ctx, *email)
		switch {
		case err == nil && other.ID != selfID:
			return &domain.ConflictError{Field: "email"}
		case err != nil && !errors.Is(err, store.ErrNotFound):
			return err
		}
	}
	return nil
}

// conflictOr turns a unique index violation that slipped past ensureAvailable
// into a ConflictError
func conflictOr(op string, err error) error {
	if !errors.Is(err, store.ErrDuplicate) {
		return storageErr(op, err)
	}
	if strings.Contains(err.Error(), "email") { // Index name tells which field clashed
		return &domain.ConflictError{Field: "email"}
	}
	return &domain.ConflictError{Field: "username"}
}
