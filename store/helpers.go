package store

// SliceIterator walks a fixed list of models in the order given.
type SliceIterator struct {
	models []Model
}

var _ Iterator = (*SliceIterator)(nil)

func NewSliceIterator(models []Model) *SliceIterator {
	return &SliceIterator{models: models}
}

func (s *SliceIterator) Valid() bool {
	return len(s.models) > 0
}

// Next panics once the slice is consumed.
func (s *SliceIterator) Next() {
	s.current()
	s.models = s.models[1:]
}

func (s *SliceIterator) Key() []byte {
	return s.current().Key
}

func (s *SliceIterator) Value() []byte {
	return s.current().Value
}

func (s *SliceIterator) Close() {
	s.models = nil
}

func (s *SliceIterator) current() Model {
	if len(s.models) == 0 {
		panic("iterator exhausted")
	}
	return s.models[0]
}

// EmptyKVStore holds nothing and drops every write. It is the bottom
// layer of MemStore.
type EmptyKVStore struct{}

var _ KVStore = EmptyKVStore{}

func (EmptyKVStore) Get(key []byte) []byte { return nil }
func (EmptyKVStore) Has(key []byte) bool { return false }
func (EmptyKVStore) Set(key, value []byte) {}
func (EmptyKVStore) Delete(key []byte) {}
func (EmptyKVStore) Iterator(start, end []byte) Iterator { return NewSliceIterator(nil) }
func (EmptyKVStore) ReverseIterator(start, end []byte) Iterator { return NewSliceIterator(nil) }
func (e EmptyKVStore) NewBatch() Batch { return NewNonAtomicBatch(e) }

// NonAtomicBatch records writes and replays them in order on Write. A
// failure half way leaves the target partially updated, so only use it
// in front of stores that cannot fail, like memory or the iavl working
// tree.
type NonAtomicBatch struct {
	target SetDeleter
	ops    []func(SetDeleter)
}

var _ Batch = (*NonAtomicBatch)(nil)

func NewNonAtomicBatch(target SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{target: target}
}

func (b *NonAtomicBatch) Set(key, value []byte) {
	b.ops = append(b.ops, func(s SetDeleter) { s.Set(key, value) })
}

func (b *NonAtomicBatch) Delete(key []byte) {
	b.ops = append(b.ops, func(s SetDeleter) { s.Delete(key) })
}

// Write applies the recorded writes and empties the batch.
func (b *NonAtomicBatch) Write() {
	for _, op := range b.ops {
		op(b.target)
	}
	b.ops = nil
}

// Len returns the number of writes waiting.
func (b *NonAtomicBatch) Len() int {
	return len(b.ops)
}
