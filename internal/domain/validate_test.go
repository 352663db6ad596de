package domain

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWallet(t *testing.T) {
	cases := []struct {
		name      string
		candidate any
		mode      WalletMode
		want      int
	}{
		{"create ignores candidate", 5000, WalletOnCreate, 100},
		{"create with nil", nil, WalletOnCreate, 100},
		{"update negative clamps", -5, WalletOnUpdate, 0},
		{"update non numeric clamps", "abc", WalletOnUpdate, 0},
		{"update numeric", 50, WalletOnUpdate, 50},
		{"update json float", float64(50), WalletOnUpdate, 50},
		{"update fraction truncates", 12.9, WalletOnUpdate, 12},
		{"update numeric string", " 42 ", WalletOnUpdate, 42},
		{"update json number", json.Number("7"), WalletOnUpdate, 7},
		{"update nil clamps", nil, WalletOnUpdate, 0},
		{"update bool clamps", true, WalletOnUpdate, 0},
		{"update NaN clamps", math.NaN(), WalletOnUpdate, 0},
		{"update zero", 0, WalletOnUpdate, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ResolveWallet(tc.candidate, tc.mode))
		})
	}
}

func TestValidateDeckVolume(t *testing.T) {
	assert.Error(t, ValidateDeckVolume(19))
	assert.NoError(t, ValidateDeckVolume(20))
	assert.NoError(t, ValidateDeckVolume(21))
	assert.NoError(t, ValidateDeckVolume(1000))
}

func TestValidateDeckName(t *testing.T) {
	assert.Error(t, ValidateDeckName(""))
	assert.Error(t, ValidateDeckName("ab"))
	assert.NoError(t, ValidateDeckName("abc"))
}

func TestValidateAccountFields(t *testing.T) {
	var vErr *ValidationError

	err := ValidateUsername("al")
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "username", vErr.Field)
	assert.NoError(t, ValidateUsername("ali"))

	err = ValidateEmail("alice.example.com")
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "email", vErr.Field)
	assert.NoError(t, ValidateEmail("alice@x.com"))

	assert.Error(t, ValidatePassword(""))
	assert.NoError(t, ValidatePassword("secret"))
}

func TestNewInventoryItemRejectsNegative(t *testing.T) {
	_, err := NewInventoryItem(1, 7, -1)
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "quantity", vErr.Field)

	item, err := NewInventoryItem(1, 7, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, item.Quantity)
}

func TestInventoryItemBeforeSave(t *testing.T) {
	item := &InventoryItem{Quantity: -2}
	assert.Error(t, item.BeforeSave(nil))

	deckCard := &DeckCardItem{Quantity: 0}
	assert.NoError(t, deckCard.BeforeSave(nil))
}

func TestParseUserUpdate(t *testing.T) {
	update, err := ParseUserUpdate(map[string]any{
		"username": "alice2",
		"wallet":   "abc",
		"password": "new-secret",
	})
	require.NoError(t, err)
	require.NotNil(t, update.Username)
	assert.Equal(t, "alice2", *update.Username)
	require.NotNil(t, update.Wallet)
	assert.Equal(t, "abc", update.Wallet.Raw)
	require.NotNil(t, update.Password)
	assert.Nil(t, update.Email)
	assert.False(t, update.Empty())

	_, err = ParseUserUpdate(map[string]any{"role": "admin"})
	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "role", vErr.Field)

	_, err = ParseUserUpdate(map[string]any{"email": 12})
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "email", vErr.Field)

	empty, err := ParseUserUpdate(map[string]any{})
	require.NoError(t, err)
	assert.True(t, empty.Empty())
}

func TestParseDeckUpdate(t *testing.T) {
	update, err := ParseDeckUpdate(map[string]any{"name": "Control", "volume": float64(30)})
	require.NoError(t, err)
	assert.Equal(t, "Control", *update.Name)
	assert.Equal(t, 30, *update.Volume)
	assert.NoError(t, update.Validate())

	update, err = ParseDeckUpdate(map[string]any{"volume": float64(10)})
	require.NoError(t, err)
	assert.Error(t, update.Validate())

	_, err = ParseDeckUpdate(map[string]any{"user_id": float64(2)})
	assert.Error(t, err)

	_, err = ParseDeckUpdate(map[string]any{"volume": "lots"})
	assert.Error(t, err)
}

func TestNotFoundErrorMatching(t *testing.T) {
	var err error = &NotFoundError{Kind: DeckNotOwned, ID: 4}
	assert.True(t, errors.Is(err, ErrDeckNotOwned))
	assert.True(t, errors.Is(err, ErrDeckNotFound))
	assert.False(t, errors.Is(err, ErrCardNotFound))

	err = &NotFoundError{Kind: DeckNotFound, ID: 4}
	assert.False(t, errors.Is(err, ErrDeckNotOwned))
	assert.Equal(t, "deck not found: 4", err.Error())

	wrapped := &StorageError{Op: "commit", Err: errors.New("disk full")}
	assert.EqualError(t, errors.Unwrap(wrapped), "disk full")
}
