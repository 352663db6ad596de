package domain

import "gorm.io/gorm"

// DefaultDeckVolume is the volume applied when a deck is created without one
const DefaultDeckVolume = 20

// Deck Model
type Deck struct {
	ID     uint   `gorm:"primaryKey" json:"id"`              // Primary key
	UserID uint   `gorm:"not null;index" json:"user_id"`     // Owning user
	Name   string `gorm:"size:100;not null" json:"name"`     // Deck name
	Volume int    `gorm:"not null;default:20" json:"volume"` // Declared minimum card count
}

// DeckCardItem Model: composition edge (deck, card) -> quantity
type DeckCardItem struct {
	ID       uint `gorm:"primaryKey" json:"id"`                                                       // Primary key
	DeckID   uint `gorm:"not null;uniqueIndex:idx_deck_card" json:"deck_id"`                          // Owning deck
	CardID   uint `gorm:"not null;uniqueIndex:idx_deck_card" json:"card_id"`                          // Referenced card
	Quantity int  `gorm:"not null;default:20;check:deck_card_quantity,quantity >= 0" json:"quantity"` // Copies in deck
	Card     Card `gorm:"foreignKey:CardID" json:"card"`                                              // Catalog entry
}

// BeforeSave rejects negative quantities on every gorm write of the row
func (d *DeckCardItem) BeforeSave(tx *gorm.DB) error {
	return ValidateQuantity(d.Quantity)
}

// DeckUpdate carries the optional changes accepted by a deck update
type DeckUpdate struct {
	Name   *string // New deck name
	Volume *int    // New volume threshold
}

// Empty reports whether the update carries no changes
func (u DeckUpdate) Empty() bool {
	return u.Name == nil && u.Volume == nil
}

// Validate checks every present slot
func (u DeckUpdate) Validate() error {
	if u.Name != nil {
		if err := ValidateDeckName(*u.Name); err != nil {
			return err
		}
	}
	if u.Volume != nil {
		if err := ValidateDeckVolume(*u.Volume); err != nil {
			return err
		}
	}
	return nil
}

// ParseDeckUpdate converts a field-keyed change set into a DeckUpdate.
// Unknown fields are rejected.
func ParseDeckUpdate(fields map[string]any) (DeckUpdate, error) {
	var update DeckUpdate
	for name, value := range fields {
		switch name {
		case "name":
			s, err := stringField("name", value)
			if err != nil {
				return DeckUpdate{}, err
			}
			update.Name = &s
		case "volume":
			n, ok := integerValue(value)
			if !ok {
				return DeckUpdate{}, &ValidationError{Field: "volume", Reason: "must be an integer"}
			}
			update.Volume = &n
		default:
			return DeckUpdate{}, &ValidationError{Field: name, Reason: "unknown field"}
		}
	}
	return update, nil
}
