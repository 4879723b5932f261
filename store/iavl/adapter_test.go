package iavl

import (
	"testing"

	"github.com/iov-one/vault/vaulttest/assert"
)

func TestCommitStoreVersions(t *testing.T) {
	commit := NewMemCommitStore()

	cache := commit.CacheWrap()
	assert.Nil(t, cache.Set([]byte("record:1"), []byte("one")))
	assert.Nil(t, cache.Set([]byte("record:2"), []byte("two")))

	// nothing is visible in the committed state before the cache is
	// written and a version saved
	val, err := commit.Get([]byte("record:1"))
	assert.Nil(t, err)
	assert.Nil(t, val)

	assert.Nil(t, cache.Write())
	id, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)

	val, err = commit.Get([]byte("record:1"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("one"), val)

	cache = commit.CacheWrap()
	assert.Nil(t, cache.Delete([]byte("record:1")))
	assert.Nil(t, cache.Set([]byte("record:3"), []byte("three")))
	assert.Nil(t, cache.Write())
	id2, err := commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(2), id2.Version)

	latest, err := commit.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, id2, latest)

	val, err = commit.Get([]byte("record:1"))
	assert.Nil(t, err)
	assert.Nil(t, val)
}

func TestAdapterIterator(t *testing.T) {
	commit := NewMemCommitStore()
	kv := commit.Adapter()
	for _, k := range []string{"b", "a", "c"} {
		assert.Nil(t, kv.Set([]byte(k), []byte(k)))
	}

	it, err := kv.ReverseIterator(nil, nil)
	assert.Nil(t, err)
	defer it.Release()
	var keys []string
	for {
		k, _, err := it.Next()
		if err != nil {
			break
		}
		keys = append(keys, string(k))
	}
	assert.Equal(t, []string{"c", "b", "a"}, keys)
}
