package orm

import (
	"github.com/iov-one/vault"
	"github.com/iov-one/vault/errors"
	amino "github.com/tendermint/go-amino"
)

// Bucket is a namespace in the KV store. All values are stored amino
// encoded under the "<name>:" key prefix.
type Bucket struct {
	name   string
	prefix []byte
	cdc    *amino.Codec
}

// NewBucket creates a bucket that encodes values using given codec. The
// codec must know all concrete types that are stored behind an interface.
func NewBucket(name string, cdc *amino.Codec) Bucket {
	return Bucket{
		name:   name,
		prefix: append([]byte(name), ':'),
		cdc:    cdc,
	}
}

// Name returns the bucket name.
func (b Bucket) Name() string {
	return b.name
}

// DBKey is the full key used in the store.
func (b Bucket) DBKey(key []byte) []byte {
	return append(append([]byte{}, b.prefix...), key...)
}

// Put encodes value and stores it under given key.
func (b Bucket) Put(db vault.KVStore, key []byte, value interface{}) error {
	raw, err := b.cdc.MarshalBinaryBare(value)
	if err != nil {
		return errors.Wrapf(errors.ErrInvalidModel, "cannot encode %T: %s", value, err)
	}
	return db.Set(b.DBKey(key), raw)
}

// One loads the value stored under given key into dst. ErrNotFound is
// returned if there is no such key.
func (b Bucket) One(db vault.ReadOnlyKVStore, key []byte, dst interface{}) error {
	raw, err := db.Get(b.DBKey(key))
	if err != nil {
		return err
	}
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%s %X", b.name, key)
	}
	return b.Decode(raw, dst)
}

// Has returns true if a value exists under given key.
func (b Bucket) Has(db vault.ReadOnlyKVStore, key []byte) (bool, error) {
	return db.Has(b.DBKey(key))
}

// Delete removes the value stored under given key.
func (b Bucket) Delete(db vault.KVStore, key []byte) error {
	return db.Delete(b.DBKey(key))
}

// Decode unmarshals a raw value returned by Iterate.
func (b Bucket) Decode(raw []byte, dst interface{}) error {
	if err := b.cdc.UnmarshalBinaryBare(raw, dst); err != nil {
		return errors.Wrapf(errors.ErrInvalidModel, "cannot decode %T: %s", dst, err)
	}
	return nil
}

// Iterate calls fn for every value in this bucket in ascending key order.
// The key passed to fn has the bucket prefix removed.
func (b Bucket) Iterate(db vault.ReadOnlyKVStore, fn func(key, raw []byte) error) error {
	it, err := db.Iterator(b.prefix, prefixEnd(b.prefix))
	if err != nil {
		return err
	}
	defer it.Release()

	for {
		key, raw, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(key[len(b.prefix):], raw); err != nil {
			return err
		}
	}
}

// prefixEnd returns the smallest key that is greater than all keys with
// given prefix.
func prefixEnd(prefix []byte) []byte {
	end := append([]byte{}, prefix...)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
