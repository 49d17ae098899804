package store

import (
	"bytes"

	"github.com/google/btree"
)

// degree of the pending-write tree. Caches are short lived and hold few
// entries, so a low degree keeps inserts cheap.
const degree = 4

// entry is a pending write. A deleted entry shadows whatever the parent
// holds under the same key.
type entry struct {
	key     []byte
	value   []byte
	deleted bool
}

func (e *entry) Less(than btree.Item) bool {
	return bytes.Compare(e.key, than.(*entry).key) < 0
}

// Cache keeps writes in memory on top of a parent store until they are
// either written through or discarded. Reads see the pending writes
// first and fall back to the parent.
type Cache struct {
	parent  KVStore
	pending *btree.BTree
	free    *btree.FreeList
}

var _ KVCacheWrap = (*Cache)(nil)

// NewCache returns an empty cache on top of parent.
func NewCache(parent KVStore) *Cache {
	return newCache(parent, btree.NewFreeList(btree.DefaultFreeListSize))
}

func newCache(parent KVStore, free *btree.FreeList) *Cache {
	return &Cache{
		parent:  parent,
		pending: btree.NewWithFreeList(degree, free),
		free:    free,
	}
}

// MemStore returns a store that lives only in memory. Useful for tests
// and for tools that never persist anything.
func MemStore() CacheableKVStore {
	return NewCache(EmptyKVStore{})
}

// CacheWrap stacks another cache on top of this one. Nested caches share
// the node free list.
func (c *Cache) CacheWrap() KVCacheWrap {
	return newCache(c, c.free)
}

// NewBatch returns a batch applied to this cache on Write.
func (c *Cache) NewBatch() Batch {
	return NewNonAtomicBatch(c)
}

// Write flushes every pending write to the parent in a single batch and
// leaves the cache empty.
func (c *Cache) Write() {
	batch := c.parent.NewBatch()
	c.pending.Ascend(func(i btree.Item) bool {
		e := i.(*entry)
		if e.deleted {
			batch.Delete(e.key)
		} else {
			batch.Set(e.key, e.value)
		}
		return true
	})
	batch.Write()
	c.Discard()
}

// Discard drops all pending writes.
func (c *Cache) Discard() {
	c.pending.Clear(true)
}

func (c *Cache) Set(key, value []byte) {
	c.pending.ReplaceOrInsert(&entry{key: key, value: value})
}

func (c *Cache) Delete(key []byte) {
	c.pending.ReplaceOrInsert(&entry{key: key, deleted: true})
}

func (c *Cache) lookup(key []byte) (*entry, bool) {
	i := c.pending.Get(&entry{key: key})
	if i == nil {
		return nil, false
	}
	return i.(*entry), true
}

func (c *Cache) Get(key []byte) []byte {
	if e, ok := c.lookup(key); ok {
		if e.deleted {
			return nil
		}
		return e.value
	}
	return c.parent.Get(key)
}

func (c *Cache) Has(key []byte) bool {
	if e, ok := c.lookup(key); ok {
		return !e.deleted
	}
	return c.parent.Has(key)
}

// Iterator returns keys from [start, end) in ascending order. Nil bounds
// are open.
func (c *Cache) Iterator(start, end []byte) Iterator {
	return newMergeIterator(c.snapshot(start, end, false), c.parent.Iterator(start, end), false)
}

// ReverseIterator returns keys from [start, end) in descending order.
func (c *Cache) ReverseIterator(start, end []byte) Iterator {
	return newMergeIterator(c.snapshot(start, end, true), c.parent.ReverseIterator(start, end), true)
}

// snapshot copies the pending entries in range so that the returned
// iterator does not hold on to the tree.
func (c *Cache) snapshot(start, end []byte, reverse bool) []*entry {
	var res []*entry
	collect := func(i btree.Item) bool {
		res = append(res, i.(*entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		c.pending.Ascend(collect)
	case start == nil:
		c.pending.AscendLessThan(&entry{key: end}, collect)
	case end == nil:
		c.pending.AscendGreaterOrEqual(&entry{key: start}, collect)
	default:
		c.pending.AscendRange(&entry{key: start}, &entry{key: end}, collect)
	}
	if reverse {
		for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
			res[i], res[j] = res[j], res[i]
		}
	}
	return res
}
