package store

import (
	"bytes"

	"github.com/iov-one/vault/errors"
)

// itemIter combines the items cached in a btree with the iterator of the
// parent store. Cached values shadow the parent, cached deletes hide parent
// keys.
type itemIter struct {
	items     []keyer
	idx       int
	ascending bool

	parent Iterator
	// head of the parent iterator, loaded lazily
	pkey, pvalue []byte
	pdone        bool
	ploaded      bool
}

var _ Iterator = (*itemIter)(nil)

func newItemIter(items []keyer, parent Iterator, ascending bool) *itemIter {
	return &itemIter{
		items:     items,
		parent:    parent,
		ascending: ascending,
	}
}

// Next implements Iterator.
func (i *itemIter) Next() (key, value []byte, err error) {
	for {
		if err := i.loadParent(); err != nil {
			return nil, nil, err
		}
		if i.idx >= len(i.items) {
			if i.pdone {
				return nil, nil, errors.ErrIteratorDone
			}
			return i.takeParent()
		}

		local := i.items[i.idx]
		if !i.pdone {
			cmp := bytes.Compare(local.Key(), i.pkey)
			if !i.ascending {
				cmp = -cmp
			}
			if cmp > 0 {
				return i.takeParent()
			}
			if cmp == 0 {
				// Local value shadows the parent.
				i.ploaded = false
			}
		}

		i.idx++
		if set, ok := local.(setItem); ok {
			return set.key, set.value, nil
		}
		// Deleted item, keep looking.
	}
}

func (i *itemIter) loadParent() error {
	if i.ploaded || i.pdone {
		return nil
	}
	k, v, err := i.parent.Next()
	switch {
	case err == nil:
		i.pkey, i.pvalue, i.ploaded = k, v, true
	case errors.ErrIteratorDone.Is(err):
		i.pdone = true
	default:
		return err
	}
	return nil
}

func (i *itemIter) takeParent() ([]byte, []byte, error) {
	i.ploaded = false
	return i.pkey, i.pvalue, nil
}

// Release implements Iterator.
func (i *itemIter) Release() {
	i.items = nil
	i.parent.Release()
}
