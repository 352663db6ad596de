package service

import (
	"sync"
	"testing"

	"card_system/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddToInventoryMerges(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")

	item, err := f.svc.AddToInventory(f.ctx, alice.ID, 7, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)

	item, err = f.svc.AddToInventory(f.ctx, alice.ID, 7, 3)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, "Rogue", item.Card.Name)

	items, err := f.svc.ListInventory(f.ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
}

func TestAddToInventoryChecks(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")

	_, err := f.svc.AddToInventory(f.ctx, 999, 7, 1)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = f.svc.AddToInventory(f.ctx, alice.ID, 404, 1)
	assert.ErrorIs(t, err, domain.ErrCardNotFound)

	_, err = f.svc.AddToInventory(f.ctx, alice.ID, 7, 0)
	var vErr *domain.ValidationError
	assert.ErrorAs(t, err, &vErr)

	_, err = f.svc.AddToInventory(f.ctx, alice.ID, 7, -3)
	assert.ErrorAs(t, err, &vErr)

	items, err := f.svc.ListInventory(f.ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRemoveFromInventory(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")
	_, err := f.svc.AddToInventory(f.ctx, alice.ID, 7, 5)
	require.NoError(t, err)
	_, err = f.svc.AddToInventory(f.ctx, alice.ID, 8, 1)
	require.NoError(t, err)

	remaining, err := f.svc.RemoveFromInventory(f.ctx, alice.ID, 7, DefaultQuantity)
	require.NoError(t, err)
	assert.Equal(t, 4, remaining)

	item, err := f.svc.GetInventoryItem(f.ctx, alice.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, 4, item.Quantity)

	// Removing more than held deletes the row rather than leaving zero
	remaining, err = f.svc.RemoveFromInventory(f.ctx, alice.ID, 7, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, remaining)

	_, err = f.svc.GetInventoryItem(f.ctx, alice.ID, 7)
	assert.ErrorIs(t, err, domain.ErrCardNotInInventory)

	items, err := f.svc.ListInventory(f.ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	for _, it := range items {
		assert.Positive(t, it.Quantity)
	}

	// Exact quantity also deletes
	_, err = f.svc.RemoveFromInventory(f.ctx, alice.ID, 8, 1)
	require.NoError(t, err)
	items, err = f.svc.ListInventory(f.ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = f.svc.RemoveFromInventory(f.ctx, alice.ID, 7, 1)
	assert.ErrorIs(t, err, domain.ErrCardNotInInventory)

	_, err = f.svc.RemoveFromInventory(f.ctx, 999, 7, 1)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestListInventoryCacheInvalidation(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")

	items, err := f.svc.ListInventory(f.ctx, alice.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	_, err = f.svc.AddToInventory(f.ctx, alice.ID, 9, 1)
	require.NoError(t, err)

	items, err = f.svc.ListInventory(f.ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Card.Curse)
	assert.True(t, items[0].Card.Thief)
}

func TestConcurrentAddsMergeIntoOneRow(t *testing.T) {
	f := newFixture(t)
	alice := f.user(t, "alice")

	const workers = 12
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.AddToInventory(f.ctx, alice.ID, 7, 1)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	items, err := f.store.ListInventory(f.ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, workers, items[0].Quantity)
}
