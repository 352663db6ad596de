package domain

// Card Model
type Card struct {
	ID    uint   `gorm:"primaryKey" json:"id"`            // Primary key
	Name  string `gorm:"size:100;not null" json:"name"`   // Card name
	Image string `gorm:"type:text;not null" json:"image"` // Image reference
	Power int    `gorm:"not null" json:"power"`           // Attack power
	Cost  int    `gorm:"not null" json:"cost"`            // Play cost
	Thief bool   `gorm:"default:false" json:"thief"`      // Thief role flag
	Guard bool   `gorm:"default:false" json:"guard"`      // Guard role flag
	Curse bool   `gorm:"default:false" json:"curse"`      // Curse role flag
}

// Validate checks the catalog entry before it is written by the seeder
func (c Card) Validate() error {
	if c.Name == "" {
		return &ValidationError{Field: "name", Reason: "card name cannot be empty"}
	}
	return nil
}
