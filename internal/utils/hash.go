package utils

import (
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// Hasher turns raw credentials into opaque salted hashes and checks candidates against them
type Hasher interface {
	Hash(raw string) (string, error)
	Verify(hash, raw string) bool
}

// BcryptHasher implements Hasher with bcrypt
type BcryptHasher struct {
	cost int // bcrypt work factor
}

// NewBcryptHasher creates a hasher, falling back to bcrypt.DefaultCost for out-of-range costs
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash generates a salted hash of raw
func (h *BcryptHasher) Hash(raw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify compares raw against hash in constant time; any failure is a mismatch
func (h *BcryptHasher) Verify(hash, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
