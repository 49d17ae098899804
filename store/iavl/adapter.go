package iavl

import (
	"github.com/tendermint/iavl"

	"github.com/iov-one/fungible/store"
)

// adapter exposes the working tree as a KVStore.
type adapter struct {
	tree *iavl.MutableTree
}

var _ store.CacheableKVStore = adapter{}

func (a adapter) Get(key []byte) []byte {
	_, value := a.tree.Get(key)
	return value
}

func (a adapter) Has(key []byte) bool   { return a.tree.Has(key) }
func (a adapter) Set(key, value []byte) { a.tree.Set(key, value) }
func (a adapter) Delete(key []byte)     { a.tree.Remove(key) }

// NewBatch applies its writes in order. The tree has no atomic batch,
// atomicity comes from the cache above it.
func (a adapter) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(a)
}

func (a adapter) CacheWrap() store.KVCacheWrap {
	return store.NewCache(a)
}

func (a adapter) Iterator(start, end []byte) store.Iterator {
	return a.scan(start, end, true)
}

func (a adapter) ReverseIterator(start, end []byte) store.Iterator {
	return a.scan(start, end, false)
}

// scan copies the range out of the tree, so the iterator stays valid
// while the tree is written.
func (a adapter) scan(start, end []byte, ascending bool) store.Iterator {
	var models []store.Model
	a.tree.IterateRange(start, end, ascending, func(key, value []byte) bool {
		models = append(models, store.Pair(key, value))
		return false
	})
	return store.NewSliceIterator(models)
}
