package store

import (
	"context"
	"errors"

	"card_system/internal/domain"
)

// Errors returned by Store implementations. Callers translate them into
// domain errors; anything else is a storage failure.
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate key")
)

// Store is the persistence boundary of the card system. Every method is a
// single statement; multi-step operations are grouped with WithTx.
type Store interface {
	// WithTx runs fn inside one transaction. The Store passed to fn is bound
	// to that transaction; a returned error rolls every write back.
	WithTx(ctx context.Context, fn func(tx Store) error) error

	UserByID(ctx context.Context, id uint) (domain.User, error)
	UserByUsername(ctx context.Context, username string) (domain.User, error)
	UserByEmail(ctx context.Context, email string) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) error
	UpdateUser(ctx context.Context, id uint, changes map[string]any) error
	DeleteUser(ctx context.Context, id uint) error

	CardByID(ctx context.Context, id uint) (domain.Card, error)
	ListCards(ctx context.Context) ([]domain.Card, error)
	ReplaceCards(ctx context.Context, cards []domain.Card) error

	InventoryItem(ctx context.Context, userID, cardID uint) (domain.InventoryItem, error)
	ListInventory(ctx context.Context, userID uint) ([]domain.InventoryItem, error)
	// MergeInventoryItem inserts the (user, card) row or adds quantity to
	// the existing one in a single statement.
	MergeInventoryItem(ctx context.Context, userID, cardID uint, quantity int) (domain.InventoryItem, error)
	// DecrementInventoryItem removes quantity copies, deleting the row when
	// nothing would remain. It returns the remaining quantity.
	DecrementInventoryItem(ctx context.Context, userID, cardID uint, quantity int) (int, error)
	DeleteInventoryByUser(ctx context.Context, userID uint) error

	DeckByID(ctx context.Context, id uint) (domain.Deck, error)
	ListDecks(ctx context.Context, userID uint) ([]domain.Deck, error)
	CreateDeck(ctx context.Context, deck *domain.Deck) error
	UpdateDeck(ctx context.Context, id uint, changes map[string]any) error
	DeleteDeck(ctx context.Context, id uint) error
	DeleteDecksByUser(ctx context.Context, userID uint) error

	ListDeckCards(ctx context.Context, deckID uint) ([]domain.DeckCardItem, error)
	// MergeDeckCardItem inserts the (deck, card) row or adds quantity to the
	// existing one in a single statement.
	MergeDeckCardItem(ctx context.Context, deckID, cardID uint, quantity int) (domain.DeckCardItem, error)
	DeleteDeckCardsByDeck(ctx context.Context, deckID uint) error
	DeleteDeckCardsByUser(ctx context.Context, userID uint) error
}
