package cron

import (
	"context"
	"testing"

	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest/assert"
)

func TestTickerPeriod(t *testing.T) {
	db := store.MemStore()

	var runs int
	ticker := NewTicker(3, RunnerFunc(func(ctx context.Context, db vault.KVStore) error {
		runs++
		return db.Set([]byte("ran"), []byte{byte(runs)})
	}))

	ctx := context.Background()
	var fired []bool
	for i := 0; i < 7; i++ {
		ok, err := ticker.Tick(ctx, db)
		assert.Nil(t, err)
		fired = append(fired, ok)
	}
	assert.Equal(t, []bool{false, false, true, false, false, true, false}, fired)
	assert.Equal(t, 2, runs)

	n, err := ticker.Count(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(7), n)

	raw, err := db.Get([]byte("ran"))
	assert.Nil(t, err)
	assert.Equal(t, []byte{2}, raw)
}

func TestTickerFailedRunIsDiscarded(t *testing.T) {
	db := store.MemStore()

	ticker := NewTicker(1, RunnerFunc(func(ctx context.Context, db vault.KVStore) error {
		if err := db.Set([]byte("partial"), []byte("x")); err != nil {
			return err
		}
		return errors.Wrap(errors.ErrState, "boom")
	}))

	ok, err := ticker.Tick(context.Background(), db)
	assert.IsErr(t, errors.ErrState, err)
	assert.Equal(t, false, ok)

	has, err := db.Has([]byte("partial"))
	assert.Nil(t, err)
	assert.Equal(t, false, has)

	n, err := ticker.Count(db)
	assert.Nil(t, err)
	assert.Equal(t, uint64(1), n)
}

func TestTickerDefaultPeriod(t *testing.T) {
	ticker := NewTicker(0, RunnerFunc(func(context.Context, vault.KVStore) error { return nil }))
	assert.Equal(t, uint64(DefaultPeriod), ticker.period)
}
