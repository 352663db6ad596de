package service

import (
	"sync"
	"testing"

	"card_system/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDeckVolumeAndName(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")

	var vErr *domain.ValidationError
	_, err := f.svc.CreateDeck(f.ctx, alice.ID, "Starter", 19)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "volume", vErr.Field)

	for _, volume := range []int{20, 21, 500} {
		deck, err := f.svc.CreateDeck(f.ctx, alice.ID, "Starter", volume)
		require.NoError(t, err)
		assert.Equal(t, volume, deck.Volume)
	}

	_, err = f.svc.CreateDeck(f.ctx, alice.ID, "ab", domain.DefaultDeckVolume)
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name", vErr.Field)

	_, err = f.svc.CreateDeck(f.ctx, alice.ID, "abc", domain.DefaultDeckVolume)
	assert.NoError(t, err)

	_, err = f.svc.CreateDeck(f.ctx, 999, "Starter", domain.DefaultDeckVolume)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	decks, err := f.svc.ListDecks(f.ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, decks, 4)
}

func TestAddCardToDeckFailureChain(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bobby")
	_, err := f.svc.AddToInventory(f.ctx, alice.ID, 7, 2)
	require.NoError(t, err)
	deck, err := f.svc.CreateDeck(f.ctx, alice.ID, "Starter", 20)
	require.NoError(t, err)
	bobDeck, err := f.svc.CreateDeck(f.ctx, bob.ID, "Bobs deck", 20)
	require.NoError(t, err)

	cases := []struct {
		name   string
		userID uint
		deckID uint
		cardID uint
		kind   domain.NotFoundKind
	}{
		{"user absent", 999, deck.ID, 7, domain.UserNotFound},
		{"deck absent", alice.ID, 999, 7, domain.DeckNotFound},
		{"deck of another user", alice.ID, bobDeck.ID, 7, domain.DeckNotOwned},
		{"card absent", alice.ID, deck.ID, 404, domain.CardNotFound},
		{"card not owned", alice.ID, deck.ID, 8, domain.CardNotInInventory},
	}
	seen := map[domain.NotFoundKind]bool{}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.AddCardToDeck(f.ctx, tc.userID, tc.deckID, tc.cardID, 1)
			var nfErr *domain.NotFoundError
			require.ErrorAs(t, err, &nfErr)
			assert.Equal(t, tc.kind, nfErr.Kind)
			seen[nfErr.Kind] = true
		})
	}
	assert.Len(t, seen, 5, "every failure must be distinguishable")

	cards, err := f.svc.ListDeckCards(f.ctx, alice.ID, deck.ID)
	require.NoError(t, err)
	assert.Empty(t, cards)
	bobCards, err := f.svc.ListDeckCards(f.ctx, bob.ID, bobDeck.ID)
	require.NoError(t, err)
	assert.Empty(t, bobCards)
}

func TestAliceScenario(t *testing.T) {
	f := newFixture(t)

	alice, err := f.svc.CreateUser(f.ctx, "alice", "alice@x.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, 100, alice.Wallet)

	item, err := f.svc.AddToInventory(f.ctx, alice.ID, 7, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	item, err = f.svc.AddToInventory(f.ctx, alice.ID, 7, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)

	deck, err := f.svc.CreateDeck(f.ctx, alice.ID, "Starter", 20)
	require.NoError(t, err)

	deckCard, err := f.svc.AddCardToDeck(f.ctx, alice.ID, deck.ID, 7, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, deckCard.Quantity)

	// Adding to a deck does not consume inventory
	inv, err := f.svc.GetInventoryItem(f.ctx, alice.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 5, inv.Quantity)

	deckCard, err = f.svc.AddCardToDeck(f.ctx, alice.ID, deck.ID, 7, 4)
	require.NoError(t, err)
	assert.Equal(t, 5, deckCard.Quantity)

	cards, err := f.svc.ListDeckCards(f.ctx, alice.ID, deck.ID)
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, 5, cards[0].Quantity)
	assert.Equal(t, domain.Card{ID: 7, Name: "Rogue", Image: "rogue.png", Power: 3, Cost: 2, Thief: true}, cards[0].Card)
}

func TestDeckOwnershipScopedMutations(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bobby")
	bobDeck, err := f.svc.CreateDeck(f.ctx, bob.ID, "Bobs deck", 20)
	require.NoError(t, err)

	name := "Hijacked"
	_, err = f.svc.UpdateDeck(f.ctx, alice.ID, bobDeck.ID, domain.DeckUpdate{Name: &name})
	assert.ErrorIs(t, err, domain.ErrDeckNotFound)

	err = f.svc.DeleteDeck(f.ctx, alice.ID, bobDeck.ID)
	assert.ErrorIs(t, err, domain.ErrDeckNotFound)

	_, err = f.svc.GetDeck(f.ctx, alice.ID, bobDeck.ID)
	assert.ErrorIs(t, err, domain.ErrDeckNotOwned)

	_, err = f.svc.ListDeckCards(f.ctx, alice.ID, bobDeck.ID)
	assert.ErrorIs(t, err, domain.ErrDeckNotFound)

	still, err := f.svc.GetDeck(f.ctx, bob.ID, bobDeck.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bobs deck", still.Name)
}

func TestUpdateDeck(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	deck, err := f.svc.CreateDeck(f.ctx, alice.ID, "Starter", 20)
	require.NoError(t, err)

	update, err := domain.ParseDeckUpdate(map[string]any{"name": "Aggro", "volume": float64(40)})
	require.NoError(t, err)
	updated, err := f.svc.UpdateDeck(f.ctx, alice.ID, deck.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "Aggro", updated.Name)
	assert.Equal(t, 40, updated.Volume)

	low := 19
	_, err = f.svc.UpdateDeck(f.ctx, alice.ID, deck.ID, domain.DeckUpdate{Volume: &low})
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)

	reloaded, err := f.svc.GetDeck(f.ctx, alice.ID, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, 40, reloaded.Volume)
}

func TestDeleteDeckRemovesContents(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	_, err := f.svc.AddToInventory(f.ctx, alice.ID, 7, 1)
	require.NoError(t, err)
	deck, err := f.svc.CreateDeck(f.ctx, alice.ID, "Starter", 20)
	require.NoError(t, err)
	_, err = f.svc.AddCardToDeck(f.ctx, alice.ID, deck.ID, 7, 3)
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteDeck(f.ctx, alice.ID, deck.ID))

	_, err = f.svc.GetDeck(f.ctx, alice.ID, deck.ID)
	assert.ErrorIs(t, err, domain.ErrDeckNotFound)
	cards, err := f.store.ListDeckCards(f.ctx, deck.ID)
	require.NoError(t, err)
	assert.Empty(t, cards)

	// Inventory survives deck deletion
	inv, err := f.svc.GetInventoryItem(f.ctx, alice.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 1, inv.Quantity)
}

func TestConcurrentDeckAddsMergeIntoOneRow(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	_, err := f.svc.AddToInventory(f.ctx, alice.ID, 7, 1)
	require.NoError(t, err)
	deck, err := f.svc.CreateDeck(f.ctx, alice.ID, "Starter", 20)
	require.NoError(t, err)

	const workers = 12
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.AddCardToDeck(f.ctx, alice.ID, deck.ID, 7, 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	items, err := f.store.ListDeckCards(f.ctx, deck.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, workers, items[0].Quantity)
}
