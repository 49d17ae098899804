package store

import "bytes"

// mergeIterator walks pending cache entries and a parent iterator side by
// side. On equal keys the cached entry wins, and deleted entries hide the
// parent value.
type mergeIterator struct {
	cached  []*entry
	parent  Iterator
	reverse bool
}

var _ Iterator = (*mergeIterator)(nil)

func newMergeIterator(cached []*entry, parent Iterator, reverse bool) *mergeIterator {
	it := &mergeIterator{cached: cached, parent: parent, reverse: reverse}
	it.skipDeleted()
	return it
}

// head reports which side holds the next key. Both are true when the
// keys are equal.
func (it *mergeIterator) head() (cached, parent bool) {
	cached = len(it.cached) > 0
	parent = it.parent.Valid()
	if !cached || !parent {
		return cached, parent
	}
	cmp := bytes.Compare(it.cached[0].key, it.parent.Key())
	if it.reverse {
		cmp = -cmp
	}
	return cmp <= 0, cmp >= 0
}

func (it *mergeIterator) advance(cached, parent bool) {
	if cached {
		it.cached = it.cached[1:]
	}
	if parent {
		it.parent.Next()
	}
}

func (it *mergeIterator) skipDeleted() {
	for {
		cached, parent := it.head()
		if !cached || !it.cached[0].deleted {
			return
		}
		it.advance(cached, parent)
	}
}

func (it *mergeIterator) Valid() bool {
	cached, parent := it.head()
	return cached || parent
}

// Next panics when the iterator is exhausted.
func (it *mergeIterator) Next() {
	cached, parent := it.head()
	if !cached && !parent {
		panic("iterator exhausted")
	}
	it.advance(cached, parent)
	it.skipDeleted()
}

func (it *mergeIterator) Key() []byte {
	cached, parent := it.head()
	switch {
	case cached:
		return it.cached[0].key
	case parent:
		return it.parent.Key()
	}
	panic("iterator exhausted")
}

func (it *mergeIterator) Value() []byte {
	cached, parent := it.head()
	switch {
	case cached:
		return it.cached[0].value
	case parent:
		return it.parent.Value()
	}
	panic("iterator exhausted")
}

func (it *mergeIterator) Close() {
	it.parent.Close()
	it.cached = nil
}
