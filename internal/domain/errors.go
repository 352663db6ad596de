package domain

import (
	"errors"
	"fmt"
)

// ValidationError reports a malformed or out-of-range field value
type ValidationError struct {
	Field  string // Offending field
	Reason string // Human readable reason
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundKind distinguishes which link of a lookup chain failed
type NotFoundKind int

const (
	UserNotFound NotFoundKind = iota + 1
	DeckNotFound
	DeckNotOwned
	CardNotFound
	CardNotInInventory
)

var notFoundMessages = map[NotFoundKind]string{
	UserNotFound:       "user not found",
	DeckNotFound:       "deck not found",
	DeckNotOwned:       "deck not found for user",
	CardNotFound:       "card not found",
	CardNotInInventory: "card not found in user inventory",
}

func (k NotFoundKind) String() string {
	if msg, ok := notFoundMessages[k]; ok {
		return msg
	}
	return "not found"
}

// NotFoundError reports a referenced entity that is absent or not owned by the caller
type NotFoundError struct {
	Kind NotFoundKind // Which lookup failed
	ID   uint         // Identifier that was looked up, zero when unknown
}

func (e *NotFoundError) Error() string {
	if e.ID == 0 {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %d", e.Kind, e.ID)
}

// Is matches sentinels of the same kind. A deck owned by someone else also
// matches ErrDeckNotFound.
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	if t.Kind == e.Kind {
		return true
	}
	return e.Kind == DeckNotOwned && t.Kind == DeckNotFound
}

// ConflictError reports a uniqueness violation
type ConflictError struct {
	Field string // Field whose value is already taken
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}

// StorageError wraps an underlying store failure; the operation was rolled back
type StorageError struct {
	Op  string // Operation that failed
	Err error  // Underlying error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage failure during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Sentinels for errors.Is checks
var (
	ErrUserNotFound       = &NotFoundError{Kind: UserNotFound}
	ErrDeckNotFound       = &NotFoundError{Kind: DeckNotFound}
	ErrDeckNotOwned       = &NotFoundError{Kind: DeckNotOwned}
	ErrCardNotFound       = &NotFoundError{Kind: CardNotFound}
	ErrCardNotInInventory = &NotFoundError{Kind: CardNotInInventory}
	ErrInvalidCredentials = errors.New("invalid email or password")
)
