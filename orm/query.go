package orm

import (
	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/errors"
)

// RegisterQuery serves any raw key of the state under "/".
func RegisterQuery(qr fungible.QueryRouter) {
	qr.Register("/", rawQuery{})
}

type rawQuery struct{}

var _ fungible.QueryHandler = rawQuery{}

func (rawQuery) Query(db fungible.ReadOnlyKVStore, mod string, data []byte) ([]fungible.Model, error) {
	return lookup(db, mod, data)
}

// lookup answers a query on full database keys. A missing key is an
// empty result, not an error.
func lookup(db fungible.ReadOnlyKVStore, mod string, key []byte) ([]fungible.Model, error) {
	switch mod {
	case fungible.KeyQueryMod:
		if value := db.Get(key); value != nil {
			return []fungible.Model{fungible.Pair(key, value)}, nil
		}
		return nil, nil
	case fungible.PrefixQueryMod:
		return collect(db.Iterator(prefixRange(key))), nil
	}
	return nil, errors.Wrapf(errors.ErrInput, "unknown query mode %q", mod)
}

// collect drains and closes it.
func collect(it fungible.Iterator) []fungible.Model {
	defer it.Close()
	models := []fungible.Model{}
	for ; it.Valid(); it.Next() {
		models = append(models, fungible.Pair(it.Key(), it.Value()))
	}
	return models
}

// prefixRange returns the iterator bounds covering every key that starts
// with prefix. The end is nil when no key sorts after all of them.
func prefixRange(prefix []byte) (start, end []byte) {
	if len(prefix) == 0 {
		return nil, nil
	}
	// Drop trailing 0xff bytes, then increment the last remaining one.
	for i := len(prefix) - 1; i >= 0; i-- {
		if prefix[i] != 0xff {
			end = make([]byte, i+1)
			copy(end, prefix)
			end[i]++
			return prefix, end
		}
	}
	return prefix, nil
}
