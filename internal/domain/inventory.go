package domain

import "gorm.io/gorm"

// InventoryItem Model: ownership edge (user, card) -> quantity
type InventoryItem struct {
	ID       uint `gorm:"primaryKey" json:"id"`                                                      // Primary key
	UserID   uint `gorm:"not null;uniqueIndex:idx_inventory_user_card" json:"user_id"`               // Owning user
	CardID   uint `gorm:"not null;uniqueIndex:idx_inventory_user_card" json:"card_id"`               // Referenced card
	Quantity int  `gorm:"not null;default:1;check:inventory_quantity,quantity >= 0" json:"quantity"` // Owned copies
	Card     Card `gorm:"foreignKey:CardID" json:"card"`                                             // Catalog entry
}

// NewInventoryItem builds an inventory edge, rejecting negative quantities
func NewInventoryItem(userID, cardID uint, quantity int) (InventoryItem, error) {
	if err := ValidateQuantity(quantity); err != nil {
		return InventoryItem{}, err
	}
	return InventoryItem{UserID: userID, CardID: cardID, Quantity: quantity}, nil
}

// BeforeSave rejects negative quantities on every gorm write of the row
func (i *InventoryItem) BeforeSave(tx *gorm.DB) error {
	return ValidateQuantity(i.Quantity)
}
