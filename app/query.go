package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/errors"
	abci "github.com/tendermint/tendermint/abci/types"
)

/*
Query reads from the last committed state.

The path selects a registered query handler, for example "/accounts" or
"/outbox", and may end with "?prefix" for a prefix scan. Data holds the
key or prefix. The requested height is ignored.

Key and Value of the response are both serialized ResultSets of equal
length, so a single lookup and a scan share one format.
*/
func (b *BaseApp) Query(req abci.RequestQuery) abci.ResponseQuery {
	path, mod := fungible.SplitQueryPath(req.Path)
	qh := b.queries.Handler(path)
	if qh == nil {
		return queryError(errors.Wrapf(errors.ErrNotFound, "query path: %s", req.Path))
	}

	id := b.state.last()
	db := b.state.committed.CacheWrap()
	defer db.Discard()

	models, err := qh.Query(db, mod, req.Data)
	if err != nil {
		return queryError(err)
	}
	keys, err := proto.Marshal(ResultsFromKeys(models))
	if err != nil {
		return queryError(err)
	}
	values, err := proto.Marshal(ResultsFromValues(models))
	if err != nil {
		return queryError(err)
	}
	return abci.ResponseQuery{
		Height: id.Version,
		Key:    keys,
		Value:  values,
	}
}

func queryError(err error) abci.ResponseQuery {
	code, log := errors.ABCIInfo(err, false)
	return abci.ResponseQuery{Code: code, Log: log}
}
