package app

import (
	"github.com/iov-one/fungible"
)

// state keeps the committed store and the two scratch pads built on top
// of it. Check writes never reach the committed store, deliver writes
// are flushed on every commit.
type state struct {
	committed fungible.CommitKVStore
	deliver   fungible.KVCacheWrap
	check     fungible.KVCacheWrap
}

func loadState(kv fungible.CommitKVStore) (*state, error) {
	if err := kv.LoadLatestVersion(); err != nil {
		return nil, err
	}
	s := &state{committed: kv}
	s.reset()
	return s, nil
}

func (s *state) reset() {
	s.deliver = s.committed.CacheWrap()
	s.check = s.committed.CacheWrap()
}

func (s *state) commit() fungible.CommitID {
	s.deliver.Write()
	s.check.Discard()
	id := s.committed.Commit()
	s.reset()
	return id
}

func (s *state) last() fungible.CommitID {
	return s.committed.LatestVersion()
}
