package domain

import "time"

// User Model
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`                                 // Primary key
	Username     string    `gorm:"size:50;uniqueIndex;not null" json:"username"`         // Unique username
	Email        string    `gorm:"size:100;uniqueIndex;not null" json:"email"`           // Unique email
	PasswordHash string    `gorm:"size:255;not null" json:"-"`                           // Salted credential hash, never serialized
	Wallet       int       `gorm:"not null;default:100;check:wallet >= 0" json:"wallet"` // Wallet balance
	CreatedAt    time.Time `json:"created_at"`                                           // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at"`                                           // Last update timestamp
}

// UserSummary is the public view of an account shown to other players
type UserSummary struct {
	ID       uint   `json:"id"`       // Account id
	Username string `json:"username"` // Display name
}

// Summary strips the private fields of an account
func (u User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Username: u.Username}
}

// UserUpdate carries the optional changes accepted by an account update.
// A nil slot means the field is left untouched.
type UserUpdate struct {
	Username *string          // New username
	Email    *string          // New email
	Password *string          // New raw credential, re-hashed before storage
	Wallet   *WalletCandidate // New wallet value, coerced and clamped
}

// WalletCandidate wraps an untyped wallet value as received from a caller.
type WalletCandidate struct {
	Raw any // Raw value (number, numeric string, nil, ...)
}

// Empty reports whether the update carries no changes
func (u UserUpdate) Empty() bool {
	return u.Username == nil && u.Email == nil && u.Password == nil && u.Wallet == nil
}

// userFieldParsers maps each mutable user field to its parser
var userFieldParsers = map[string]func(*UserUpdate, any) error{
	"username": func(u *UserUpdate, v any) error {
		s, err := stringField("username", v)
		if err != nil {
			return err
		}
		u.Username = &s
		return nil
	},
	"email": func(u *UserUpdate, v any) error {
		s, err := stringField("email", v)
		if err != nil {
			return err
		}
		u.Email = &s
		return nil
	},
	"password": func(u *UserUpdate, v any) error {
		s, err := stringField("password", v)
		if err != nil {
			return err
		}
		u.Password = &s
		return nil
	},
	"wallet": func(u *UserUpdate, v any) error {
		u.Wallet = &WalletCandidate{Raw: v} // Coercion happens at write time
		return nil
	},
}

// ParseUserUpdate converts a field-keyed change set into a UserUpdate.
// Unknown fields are rejected.
func ParseUserUpdate(fields map[string]any) (UserUpdate, error) {
	var update UserUpdate
	for name, value := range fields {
		parse, ok := userFieldParsers[name]
		if !ok {
			return UserUpdate{}, &ValidationError{Field: name, Reason: "unknown field"}
		}
		if err := parse(&update, value); err != nil {
			return UserUpdate{}, err
		}
	}
	return update, nil
}

// stringField asserts a change set value is a string
func stringField(field string, v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &ValidationError{Field: field, Reason: "must be a string"}
	}
	return s, nil
}
