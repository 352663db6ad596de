package service

import (
	"context" // Request scoped cancellation
	"errors"  // Error matching
	"strconv" // Cache key formatting
	"time"    // Cache TTL

	"card_system/internal/domain" // Domain models and errors
	"card_system/internal/store"  // Persistence boundary
	"card_system/internal/utils"  // Hashing and caching

	"github.com/sirupsen/logrus" // Structured logging
)

// DefaultQuantity is used by transports when a caller omits a quantity
const DefaultQuantity = 1

// Service implements the account, catalog, inventory and deck operations.
// Every mutation checks referenced entities in dependency order
// (user, then deck or card, then inventory) and commits its writes in a
// single store transaction.
type Service struct {
	store    store.Store   // Persistence boundary
	hasher   utils.Hasher  // Credential hashing
	cache    utils.Cache   // Read cache for catalog and inventory listings
	cacheTTL time.Duration // Lifetime of cached reads
}

// New wires a Service. A nil cache disables read caching.
func New(st store.Store, hasher utils.Hasher, cache utils.Cache, cacheTTL time.Duration) *Service {
	return &Service{store: st, hasher: hasher, cache: cache, cacheTTL: cacheTTL}
}

// storageErr passes domain errors through and wraps everything else
func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var (
		vErr  *domain.ValidationError
		nfErr *domain.NotFoundError
		cErr  *domain.ConflictError
		sErr  *domain.StorageError
	)
	if errors.As(err, &vErr) || errors.As(err, &nfErr) || errors.As(err, &cErr) || errors.As(err, &sErr) ||
		errors.Is(err, domain.ErrInvalidCredentials) {
		return err
	}
	return &domain.StorageError{Op: op, Err: err} // Driver or infrastructure failure
}

// lookupErr maps store.ErrNotFound to the given not-found kind
func lookupErr(op string, err error, kind domain.NotFoundKind, id uint) error {
	if errors.Is(err, store.ErrNotFound) {
		return &domain.NotFoundError{Kind: kind, ID: id}
	}
	return storageErr(op, err)
}

// requireUser is the first link of every lookup chain
func requireUser(ctx context.Context, st store.Store, userID uint) (domain.User, error) {
	user, err := st.UserByID(ctx, userID)
	if err != nil {
		return domain.User{}, lookupErr("load user", err, domain.UserNotFound, userID)
	}
	return user, nil
}

// requireCard checks the catalog
func requireCard(ctx context.Context, st store.Store, cardID uint) (domain.Card, error) {
	card, err := st.CardByID(ctx, cardID)
	if err != nil {
		return domain.Card{}, lookupErr("load card", err, domain.CardNotFound, cardID)
	}
	return card, nil
}

// requireOwnedDeck is an ownership-scoped lookup: a deck belonging to
// another user is reported as not found for this one
func requireOwnedDeck(ctx context.Context, st store.Store, userID, deckID uint) (domain.Deck, error) {
	deck, err := st.DeckByID(ctx, deckID)
	if err != nil {
		return domain.Deck{}, lookupErr("load deck", err, domain.DeckNotFound, deckID)
	}
	if deck.UserID != userID { // Hide decks of other users
		return domain.Deck{}, &domain.NotFoundError{Kind: domain.DeckNotOwned, ID: deckID}
	}
	return deck, nil
}

func cardKey(id uint) string          { return "card:" + strconv.FormatUint(uint64(id), 10) }
func inventoryKey(userID uint) string { return "inventory:user:" + strconv.FormatUint(uint64(userID), 10) }

const catalogKey = "cards:all"

// cached loads key into dest from the cache, falling back to load and
// storing its result. Cache failures are logged and bypassed.
func cached[T any](ctx context.Context, s *Service, key string, load func() (T, error)) (T, error) {
	var value T
	if s.cache != nil {
		found, err := s.cache.Get(ctx, key, &value) // Try the cache first
		if err == nil && found {
			return value, nil
		}
		if err != nil {
			logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("cache read failed")
		}
	}
	value, err := load() // Miss, load from the store
	if err != nil {
		return value, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
			logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("cache write failed")
		}
	}
	return value, nil
}

// invalidate drops cache keys after a committed write
func (s *Service) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil { // Drop every key in one call
		logrus.WithFields(logrus.Fields{"keys": keys, "error": err.Error()}).Warn("cache invalidation failed")
	}
}
