package orm

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/iov-one/vault/store"
	"github.com/iov-one/vault/vaulttest/assert"
)

func TestSequence(t *testing.T) {
	db := store.MemStore()

	cases := []struct {
		name       string
		init       uint64
		increments uint64
	}{
		{name: "a", init: 0, increments: 22},
		{name: "b", init: 0, increments: 11},
		{name: "a", init: 22, increments: 18},
		{name: "c", init: 0, increments: 77},
		{name: "b", init: 11, increments: 248},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			s := NewSequence("test", tc.name)
			orig, err := s.Latest(db)
			assert.Nil(t, err)
			assert.Equal(t, tc.init, orig)

			var val uint64
			for i := uint64(0); i < tc.increments; i++ {
				val, err = s.NextInt(db)
				assert.Nil(t, err)
			}
			assert.Equal(t, tc.init+tc.increments, val)

			// raw bytes keep the numeric order
			if bytes.Compare(EncodeSequence(val), EncodeSequence(orig)) != 1 {
				t.Fatal("encoded sequence is not ordered")
			}
		})
	}
}
