package utils

import (
	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/errors"
)

// Recovery turns a panic below it into an ErrPanic, so the node keeps
// running and the transaction fails like any other.
type Recovery struct{}

var _ fungible.Decorator = Recovery{}

func NewRecovery() Recovery {
	return Recovery{}
}

func (Recovery) Check(ctx fungible.Context, db fungible.KVStore, tx fungible.Tx, next fungible.Checker) (_ *fungible.CheckResult, err error) {
	defer errors.Recover(&err)
	return next.Check(ctx, db, tx)
}

func (Recovery) Deliver(ctx fungible.Context, db fungible.KVStore, tx fungible.Tx, next fungible.Deliverer) (_ *fungible.DeliverResult, err error) {
	defer errors.Recover(&err)
	return next.Deliver(ctx, db, tx)
}
