package fungible

// ReadOnlyKVStore reads from a sorted key value store.
type ReadOnlyKVStore interface {
	// Get returns nil if key is missing. A nil key panics.
	Get(key []byte) []byte
	Has(key []byte) bool

	// Iterator walks [start, end) in ascending order. A nil bound is
	// open. The range must not be written to while the iterator is in
	// use.
	Iterator(start, end []byte) Iterator
	// ReverseIterator walks [start, end) in descending order.
	ReverseIterator(start, end []byte) Iterator
}

// SetDeleter is the write side shared by stores and batches. Neither
// argument may be modified by the caller afterwards.
type SetDeleter interface {
	Set(key, value []byte)
	Delete(key []byte)
}

// KVStore is the store every handler works on.
type KVStore interface {
	ReadOnlyKVStore
	SetDeleter
	NewBatch() Batch
}

// Batch collects writes and applies them together on Write.
type Batch interface {
	SetDeleter
	Write()
}

/*
Iterator walks a range of keys:

  it := db.Iterator(start, end)
  defer it.Close()
  for ; it.Valid(); it.Next() {
    key, value := it.Key(), it.Value()
  }

Next, Key and Value panic once Valid returned false. Returned slices
must not be modified.
*/
type Iterator interface {
	Valid() bool
	Next()
	Key() []byte
	Value() []byte
	Close()
}

// CacheableKVStore can stack a scratch pad on top of itself.
type CacheableKVStore interface {
	KVStore
	CacheWrap() KVCacheWrap
}

// KVCacheWrap holds writes on top of another store. All reads see them.
// Write flushes them to the store below, Discard drops them. Like an SQL
// SAVEPOINT, a cache wrap may be wrapped again.
type KVCacheWrap interface {
	CacheableKVStore
	Write()
	Discard()
}

// CommitKVStore is the persistent root store. It is modified through a
// CacheWrap and saved as a new version with Commit.
type CommitKVStore interface {
	// Get reads the last committed state.
	Get(key []byte) []byte
	CacheWrap() KVCacheWrap
	Commit() CommitID
	// LoadLatestVersion loads the newest complete version from disk. After
	// a crash during commit that is the version before.
	LoadLatestVersion() error
	LatestVersion() CommitID
}

// CommitID identifies a committed version by number and merkle root.
type CommitID struct {
	Version int64
	Hash    []byte
}
