/*
Package iavl persists the ledger state in a versioned merkle tree.

Every block commit saves a tree version. A restarted node continues from
the last one, and the app hash handed to consensus covers every balance,
outbox packet and inbox position.
*/
package iavl

import (
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"

	"github.com/iov-one/fungible/store"
)

const (
	// DefaultCacheSize is the number of tree nodes kept in memory.
	DefaultCacheSize = 10000
	// DefaultHistorySize is the number of versions kept on disk.
	DefaultHistorySize = 20
)

// CommitStore is the root store of a node.
type CommitStore struct {
	db   dbm.DB
	tree *iavl.MutableTree
	// keep is the number of versions retained, zero keeps all.
	keep int64
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore opens the leveldb database name in dir. An empty dir
// keeps everything in memory.
func NewCommitStore(dir, name string) CommitStore {
	db := dbm.DB(dbm.NewMemDB())
	if dir != "" {
		db = dbm.NewDB(name, dbm.GoLevelDBBackend, dir)
	}
	return CommitStore{
		db:   db,
		tree: iavl.NewMutableTree(db, DefaultCacheSize),
		keep: DefaultHistorySize,
	}
}

// Get reads the last committed version, ignoring uncommitted writes.
func (s CommitStore) Get(key []byte) []byte {
	_, value := s.tree.GetVersioned(key, s.tree.Version())
	return value
}

// Commit saves the working tree as a new version and drops the version
// that falls out of the history. A failing disk leaves the node in an
// unknown state, so errors panic.
func (s CommitStore) Commit() store.CommitID {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		panic(err)
	}
	if old := version - s.keep; s.keep > 0 && old > 0 {
		if err := s.tree.DeleteVersion(old); err != nil {
			panic(err)
		}
	}
	return store.CommitID{Version: version, Hash: hash}
}

func (s CommitStore) LoadLatestVersion() error {
	_, err := s.tree.Load()
	return err
}

func (s CommitStore) LatestVersion() store.CommitID {
	return store.CommitID{Version: s.tree.Version(), Hash: s.tree.Hash()}
}

func (s CommitStore) Close() {
	s.db.Close()
}

// Adapter writes straight into the working tree. Such writes are only
// undone by reloading the last version from disk.
func (s CommitStore) Adapter() store.CacheableKVStore {
	return adapter{tree: s.tree}
}

// CacheWrap buffers writes in front of the working tree.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	return store.NewCache(s.Adapter())
}
