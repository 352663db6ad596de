package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	minUsernameLength = 3   // Minimum username length
	minDeckNameLength = 3   // Minimum deck name length
	MinDeckVolume     = 20  // Minimum declared deck volume
	InitialWallet     = 100 // Wallet granted on signup
)

// WalletMode tells ResolveWallet whether the value is for a new or an existing account
type WalletMode int

const (
	WalletOnCreate WalletMode = iota // Signup: the candidate is ignored
	WalletOnUpdate                   // Update: the candidate is coerced and clamped
)

// ResolveWallet turns a wallet candidate into the value to persist.
// New accounts always start at InitialWallet. Updates coerce the candidate
// to an integer; anything non-numeric or negative lands on 0.
func ResolveWallet(candidate any, mode WalletMode) int {
	if mode == WalletOnCreate {
		return InitialWallet
	}
	n, ok := integerValue(candidate)
	if !ok || n < 0 {
		return 0
	}
	return n
}

// integerValue coerces numbers and numeric strings to int, truncating fractions
func integerValue(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return int(n), true
	case float32:
		return integerValue(float64(n))
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		if f, err := n.Float64(); err == nil {
			return integerValue(f)
		}
		return 0, false
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// ValidateUsername requires at least three characters
func ValidateUsername(username string) error {
	if username == "" || utf8.RuneCountInString(username) < minUsernameLength {
		return &ValidationError{Field: "username", Reason: "must be at least 3 characters long"}
	}
	return nil
}

// ValidateEmail requires an "@"
func ValidateEmail(email string) error {
	if !strings.Contains(email, "@") {
		return &ValidationError{Field: "email", Reason: "valid email address required"}
	}
	return nil
}

// ValidatePassword requires a non-empty credential
func ValidatePassword(password string) error {
	if password == "" {
		return &ValidationError{Field: "password", Reason: "password is required"}
	}
	return nil
}

// ValidateQuantity rejects negative quantities
func ValidateQuantity(quantity int) error {
	if quantity < 0 {
		return &ValidationError{Field: "quantity", Reason: "quantity cannot be negative"}
	}
	return nil
}

// ValidateDelta requires a positive amount for add and remove requests
func ValidateDelta(quantity int) error {
	if quantity < 1 {
		return &ValidationError{Field: "quantity", Reason: "quantity must be at least 1"}
	}
	return nil
}

// ValidateDeckName requires at least three characters
func ValidateDeckName(name string) error {
	if utf8.RuneCountInString(name) < minDeckNameLength {
		return &ValidationError{Field: "name", Reason: "deck name must be at least 3 characters long"}
	}
	return nil
}

// ValidateDeckVolume enforces the minimum; there is no upper bound
func ValidateDeckVolume(volume int) error {
	if volume < MinDeckVolume {
		return &ValidationError{Field: "volume", Reason: "deck must be at least 20 cards"}
	}
	return nil
}
