package store

import (
	"context" // Request scoped cancellation
	"errors"  // Sentinel matching
	"fmt"     // Error wrapping
	"strings" // Driver message matching

	"card_system/internal/domain" // Persisted models

	"gorm.io/gorm"        // GORM ORM library
	"gorm.io/gorm/clause" // Upsert clauses
)

// GormStore implements Store on top of GORM
type GormStore struct {
	db *gorm.DB // Transaction-bound when created by WithTx
}

// NewGormStore wraps a GORM handle
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// translate maps GORM and driver errors onto the package sentinels
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey),
		strings.Contains(err.Error(), "UNIQUE constraint failed"): // modernc sqlite is not translated by the dialect
		return fmt.Errorf("%w: %s", ErrDuplicate, err.Error())
	default:
		return err
	}
}

func (s *GormStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx}) // Store bound to the transaction
	})
}

func (s *GormStore) UserByID(ctx context.Context, id uint) (domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).First(&user, id).Error // Lookup by primary key
	return user, translate(err)
}

func (s *GormStore) UserByUsername(ctx context.Context, username string) (domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	return user, translate(err)
}

func (s *GormStore) UserByEmail(ctx context.Context, email string) (domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return user, translate(err)
}

func (s *GormStore) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := s.db.WithContext(ctx).Order("id").Find(&users).Error // Oldest account first
	return users, translate(err)
}

func (s *GormStore) CreateUser(ctx context.Context, user *domain.User) error {
	return translate(s.db.WithContext(ctx).Create(user).Error)
}

func (s *GormStore) UpdateUser(ctx context.Context, id uint, changes map[string]any) error {
	// RowsAffected is not checked: MySQL reports 0 when the values are unchanged
	return translate(s.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Updates(changes).Error)
}

func (s *GormStore) DeleteUser(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&domain.User{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) CardByID(ctx context.Context, id uint) (domain.Card, error) {
	var card domain.Card
	err := s.db.WithContext(ctx).First(&card, id).Error
	return card, translate(err)
}

func (s *GormStore) ListCards(ctx context.Context) ([]domain.Card, error) {
	var cards []domain.Card
	err := s.db.WithContext(ctx).Order("id").Find(&cards).Error // Catalog in id order
	return cards, translate(err)
}

// ReplaceCards deletes every catalog entry that no inventory or deck
// references and upserts the given cards by id.
func (s *GormStore) ReplaceCards(ctx context.Context, cards []domain.Card) error {
	db := s.db.WithContext(ctx)
	err := db.Where("id NOT IN (?) AND id NOT IN (?)",
		db.Model(&domain.InventoryItem{}).Select("card_id"),
		db.Model(&domain.DeckCardItem{}).Select("card_id"),
	).Delete(&domain.Card{}).Error
	if err != nil {
		return translate(err)
	}
	if len(cards) == 0 {
		return nil
	}
	return translate(db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&cards).Error) // Upsert by id
}

func (s *GormStore) InventoryItem(ctx context.Context, userID, cardID uint) (domain.InventoryItem, error) {
	var item domain.InventoryItem
	err := s.db.WithContext(ctx).
		Preload("Card").
		Where("user_id = ? AND card_id = ?", userID, cardID).
		First(&item).Error
	return item, translate(err)
}

func (s *GormStore) ListInventory(ctx context.Context, userID uint) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	err := s.db.WithContext(ctx).
		Preload("Card").
		Where("user_id = ?", userID).
		Order("card_id").
		Find(&items).Error
	return items, translate(err)
}

func (s *GormStore) MergeInventoryItem(ctx context.Context, userID, cardID uint, quantity int) (domain.InventoryItem, error) {
	item, err := domain.NewInventoryItem(userID, cardID, quantity)
	if err != nil {
		return domain.InventoryItem{}, err
	}
	// Insert, or accumulate onto the row that won the unique index
	err = s.db.WithContext(ctx).Omit("Card").Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "card_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity": gorm.Expr("inventory_items.quantity + ?", quantity),
		}),
	}).Create(&item).Error
	if err != nil {
		return domain.InventoryItem{}, translate(err)
	}
	return s.InventoryItem(ctx, userID, cardID)
}

func (s *GormStore) DecrementInventoryItem(ctx context.Context, userID, cardID uint, quantity int) (int, error) {
	db := s.db.WithContext(ctx)
	res := db.Model(&domain.InventoryItem{}).
		Where("user_id = ? AND card_id = ? AND quantity > ?", userID, cardID, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if res.Error != nil {
		return 0, translate(res.Error)
	}
	if res.RowsAffected > 0 { // Some copies remain
		item, err := s.InventoryItem(ctx, userID, cardID)
		if err != nil {
			return 0, err
		}
		return item.Quantity, nil
	}
	// Nothing would remain, drop the row instead of leaving a zero quantity
	res = db.Where("user_id = ? AND card_id = ?", userID, cardID).Delete(&domain.InventoryItem{})
	if res.Error != nil {
		return 0, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return 0, ErrNotFound
	}
	return 0, nil
}

func (s *GormStore) DeleteInventoryByUser(ctx context.Context, userID uint) error {
	return translate(s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.InventoryItem{}).Error)
}

func (s *GormStore) DeckByID(ctx context.Context, id uint) (domain.Deck, error) {
	var deck domain.Deck
	err := s.db.WithContext(ctx).First(&deck, id).Error
	return deck, translate(err)
}

func (s *GormStore) ListDecks(ctx context.Context, userID uint) ([]domain.Deck, error) {
	var decks []domain.Deck
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&decks).Error
	return decks, translate(err)
}

func (s *GormStore) CreateDeck(ctx context.Context, deck *domain.Deck) error {
	return translate(s.db.WithContext(ctx).Create(deck).Error)
}

func (s *GormStore) UpdateDeck(ctx context.Context, id uint, changes map[string]any) error {
	// RowsAffected is not checked: MySQL reports 0 when the values are unchanged
	return translate(s.db.WithContext(ctx).Model(&domain.Deck{}).Where("id = ?", id).Updates(changes).Error)
}

func (s *GormStore) DeleteDeck(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&domain.Deck{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *GormStore) DeleteDecksByUser(ctx context.Context, userID uint) error {
	return translate(s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.Deck{}).Error)
}

func (s *GormStore) ListDeckCards(ctx context.Context, deckID uint) ([]domain.DeckCardItem, error) {
	var items []domain.DeckCardItem
	err := s.db.WithContext(ctx).
		Preload("Card").
		Where("deck_id = ?", deckID).
		Order("card_id").
		Find(&items).Error
	return items, translate(err)
}

func (s *GormStore) MergeDeckCardItem(ctx context.Context, deckID, cardID uint, quantity int) (domain.DeckCardItem, error) {
	if err := domain.ValidateQuantity(quantity); err != nil {
		return domain.DeckCardItem{}, err
	}
	item := domain.DeckCardItem{DeckID: deckID, CardID: cardID, Quantity: quantity}
	err := s.db.WithContext(ctx).Omit("Card").Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "deck_id"}, {Name: "card_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity": gorm.Expr("deck_card_items.quantity + ?", quantity),
		}),
	}).Create(&item).Error
	if err != nil {
		return domain.DeckCardItem{}, translate(err)
	}
	var merged domain.DeckCardItem // Reload with the card preloaded
	err = s.db.WithContext(ctx).
		Preload("Card").
		Where("deck_id = ? AND card_id = ?", deckID, cardID).
		First(&merged).Error
	return merged, translate(err)
}

func (s *GormStore) DeleteDeckCardsByDeck(ctx context.Context, deckID uint) error {
	return translate(s.db.WithContext(ctx).Where("deck_id = ?", deckID).Delete(&domain.DeckCardItem{}).Error)
}

func (s *GormStore) DeleteDeckCardsByUser(ctx context.Context, userID uint) error {
	db := s.db.WithContext(ctx)
	return translate(db.
		Where("deck_id IN (?)", db.Model(&domain.Deck{}).Select("id").Where("user_id = ?", userID)). // Every deck of the user
		Delete(&domain.DeckCardItem{}).Error)
}
