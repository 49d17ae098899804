package utils

import "github.com/iov-one/fungible"

// Savepoint runs the rest of the stack on a cache of the store. The cache
// is written on success and dropped on error, so a transfer debits the
// owner and credits or queues the packet together, or does neither.
//
// A new Savepoint is inactive. Enable it with OnCheck and OnDeliver.
type Savepoint struct {
	check, deliver bool
}

var _ fungible.Decorator = Savepoint{}

func NewSavepoint() Savepoint {
	return Savepoint{}
}

func (s Savepoint) OnCheck() Savepoint {
	s.check = true
	return s
}

func (s Savepoint) OnDeliver() Savepoint {
	s.deliver = true
	return s
}

func (s Savepoint) Check(ctx fungible.Context, db fungible.KVStore, tx fungible.Tx, next fungible.Checker) (res *fungible.CheckResult, err error) {
	if !s.check {
		return next.Check(ctx, db, tx)
	}
	err = atomically(db, func(db fungible.KVStore) (err error) {
		res, err = next.Check(ctx, db, tx)
		return err
	})
	return res, err
}

func (s Savepoint) Deliver(ctx fungible.Context, db fungible.KVStore, tx fungible.Tx, next fungible.Deliverer) (res *fungible.DeliverResult, err error) {
	if !s.deliver {
		return next.Deliver(ctx, db, tx)
	}
	err = atomically(db, func(db fungible.KVStore) (err error) {
		res, err = next.Deliver(ctx, db, tx)
		return err
	})
	return res, err
}

// atomically keeps the writes of fn only if it succeeds. A store without
// a cache is handed to fn as is.
func atomically(db fungible.KVStore, fn func(fungible.KVStore) error) error {
	cacheable, ok := db.(fungible.CacheableKVStore)
	if !ok {
		return fn(db)
	}
	cache := cacheable.CacheWrap()
	if err := fn(cache); err != nil {
		cache.Discard()
		return err
	}
	cache.Write()
	return nil
}
