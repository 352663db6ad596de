package service

import (
	"context"
	"testing"
	"time"

	"card_system/internal/db"
	"card_system/internal/domain"
	"card_system/internal/store"
	"card_system/internal/utils"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fixture struct {
	svc   *Service
	store *store.GormStore
	gdb   *gorm.DB
	ctx   context.Context
}

var testCatalog = []domain.Card{
	{ID: 7, Name: "Rogue", Image: "rogue.png", Power: 3, Cost: 2, Thief: true},
	{ID: 8, Name: "Sentinel", Image: "sentinel.png", Power: 1, Cost: 1, Guard: true},
	{ID: 9, Name: "Hex", Image: "hex.png", Power: 2, Cost: 3, Curse: true, Thief: true},
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	gdb, err := db.OpenSQLite(":memory:", false)
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	st := store.NewGormStore(gdb)
	svc := New(st, utils.NewBcryptHasher(bcrypt.MinCost), utils.NewMemoryCache(time.Minute), time.Minute)
	ctx := context.Background()
	require.NoError(t, svc.SeedCatalog(ctx, testCatalog))
	return &fixture{svc: svc, store: st, gdb: gdb, ctx: ctx}
}

func (f *fixture) user(t *testing.T, username string) domain.User {
	t.Helper()
	u, err := f.svc.CreateUser(f.ctx, username, username+"@x.com", "secret")
	require.NoError(t, err)
	return u
}
