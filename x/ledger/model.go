package ledger

import (
	"github.com/iov-one/fungible/errors"
	"github.com/iov-one/fungible/orm"
)

// BucketName is where we store the accounts
const BucketName = "accounts"

var _ orm.Model = (*Account)(nil)

// Validate requires a valid balance.
func (a *Account) Validate() error {
	if a.Balance == nil {
		return errors.Wrap(errors.ErrEmpty, "balance")
	}
	return a.Balance.Validate()
}

// NewBucket returns the bucket holding all accounts, keyed by owner
// address.
func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &Account{})
}
