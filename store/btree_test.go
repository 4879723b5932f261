package store

import (
	"testing"

	"github.com/iov-one/vault/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, kv ReadOnlyKVStore, key string) []byte {
	t.Helper()
	v, err := kv.Get([]byte(key))
	require.NoError(t, err)
	return v
}

func collect(t *testing.T, it Iterator) []string {
	t.Helper()
	defer it.Release()
	var keys []string
	for {
		k, _, err := it.Next()
		if errors.ErrIteratorDone.Is(err) {
			return keys
		}
		require.NoError(t, err)
		keys = append(keys, string(k))
	}
}

// TestBTreeCacheGetSet does basic sanity checks on our cache
func TestBTreeCacheGetSet(t *testing.T) {
	base := MemStore()

	k, v := []byte("french"), []byte("fry")
	assert.Nil(t, get(t, base, "french"))
	require.NoError(t, base.Set(k, v))
	assert.Equal(t, v, get(t, base, "french"))

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	assert.Equal(t, v, get(t, cache, "french"))

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	require.NoError(t, cache.Set(k2, v2))
	assert.Equal(t, v2, get(t, cache, "LA"))
	assert.Nil(t, get(t, base, "LA"))
	has, err := base.Has(k2)
	require.NoError(t, err)
	assert.False(t, has)

	// we can write the cache to the base layer...
	require.NoError(t, cache.Write())
	assert.Equal(t, v2, get(t, base, "LA"))

	// we can discard one
	c2 := base.CacheWrap()
	require.NoError(t, c2.Set([]byte("Bayern"), []byte("Munich")))
	c2.Discard()
	assert.Nil(t, get(t, base, "Bayern"))

	// and commit a delete
	c3 := base.CacheWrap()
	require.NoError(t, c3.Delete(k))
	assert.Nil(t, get(t, c3, "french"))
	require.NoError(t, c3.Write())
	assert.Nil(t, get(t, base, "french"))
	assert.Equal(t, v2, get(t, base, "LA"))
}

func TestBTreeCacheIterators(t *testing.T) {
	base := MemStore()
	for _, k := range []string{"a", "c", "e", "g"} {
		require.NoError(t, base.Set([]byte(k), []byte(k)))
	}

	cache := base.CacheWrap()
	require.NoError(t, cache.Set([]byte("b"), []byte("b")))
	require.NoError(t, cache.Set([]byte("c"), []byte("C")))
	require.NoError(t, cache.Delete([]byte("e")))

	it, err := cache.Iterator(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "g"}, collect(t, it))

	it, err = cache.Iterator([]byte("b"), []byte("g"))
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c"}, collect(t, it))

	it, err = cache.ReverseIterator(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"g", "c", "b", "a"}, collect(t, it))

	assert.Equal(t, []byte("C"), get(t, cache, "c"))

	// base is untouched until write
	it, err = base.Iterator(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "e", "g"}, collect(t, it))
}
