package orm

import (
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest/assert"
	amino "github.com/tendermint/go-amino"
)

type counter struct {
	Name  string
	Count uint64
}

func TestBucketPutOneIterate(t *testing.T) {
	db := store.MemStore()
	b := NewBucket("cnt", amino.NewCodec())
	other := NewBucket("cnu", amino.NewCodec())

	assert.Nil(t, b.Put(db, EncodeSequence(2), counter{Name: "two", Count: 2}))
	assert.Nil(t, b.Put(db, EncodeSequence(1), counter{Name: "one", Count: 1}))
	assert.Nil(t, other.Put(db, EncodeSequence(1), counter{Name: "other"}))

	var c counter
	assert.Nil(t, b.One(db, EncodeSequence(2), &c))
	assert.Equal(t, counter{Name: "two", Count: 2}, c)

	err := b.One(db, EncodeSequence(3), &c)
	assert.IsErr(t, errors.ErrNotFound, err)

	var names []string
	err = b.Iterate(db, func(key, raw []byte) error {
		var c counter
		if err := b.Decode(raw, &c); err != nil {
			return err
		}
		assert.Equal(t, c.Count, DecodeSequence(key))
		names = append(names, c.Name)
		return nil
	})
	assert.Nil(t, err)
	assert.Equal(t, []string{"one", "two"}, names)

	assert.Nil(t, b.Delete(db, EncodeSequence(1)))
	has, err := b.Has(db, EncodeSequence(1))
	assert.Nil(t, err)
	assert.Equal(t, false, has)
}
