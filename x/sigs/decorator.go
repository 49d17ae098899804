/*
Package sigs verifies the signatures of a transaction and keeps a
sequence per signing key, so that a signed transaction is accepted once.

The Decorator puts the verified signers in the context, where handlers
read them through Authenticate.
*/
package sigs

import (
	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/errors"
)

// RegisterQuery exposes the signer records under "/auth".
func RegisterQuery(qr fungible.QueryRouter) {
	NewBucket().Register("auth", qr)
}

// Decorator rejects a transaction unless every signature on it is
// valid for the current chain and sequence.
type Decorator struct {
	optional bool
}

var _ fungible.Decorator = Decorator{}

// NewDecorator requires at least one signature.
func NewDecorator() Decorator {
	return Decorator{}
}

// AllowMissingSigs lets unsigned transactions through with no signers in
// the context. Signatures that are present must still verify.
func (d Decorator) AllowMissingSigs() Decorator {
	d.optional = true
	return d
}

func (d Decorator) Check(ctx fungible.Context, db fungible.KVStore, tx fungible.Tx, next fungible.Checker) (*fungible.CheckResult, error) {
	ctx, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Check(ctx, db, tx)
}

func (d Decorator) Deliver(ctx fungible.Context, db fungible.KVStore, tx fungible.Tx, next fungible.Deliverer) (*fungible.DeliverResult, error) {
	ctx, err := d.authenticate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	return next.Deliver(ctx, db, tx)
}

func (d Decorator) authenticate(ctx fungible.Context, db fungible.KVStore, tx fungible.Tx) (fungible.Context, error) {
	var signers []fungible.Condition
	if stx, ok := tx.(SignedTx); ok {
		var err error
		if signers, err = VerifyTxSignatures(db, stx, fungible.GetChainID(ctx)); err != nil {
			return nil, errors.Wrap(err, "cannot verify signatures")
		}
	}
	if len(signers) == 0 && !d.optional {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return withSigners(ctx, signers), nil
}
