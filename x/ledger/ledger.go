package ledger

import (
	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/amount"
	"github.com/iov-one/fungible/errors"
	"github.com/iov-one/fungible/orm"
)

// initKey marks a ledger that went through Initialize.
var initKey = []byte("_ledger:init")

// Ledger is the account book of a single chain. Accounts that were never
// written have a zero balance.
//
// Mutations reject amounts that are negative or out of range with
// ErrAmount. Other than that, methods return an error other than
// ErrInsufficientBalance or ErrAlreadyInitialized only when the
// underlying store holds data that cannot be decoded.
type Ledger interface {
	// Initialize sets the balance of the account. It can be done only
	// once per chain.
	Initialize(ctx fungible.Context, db fungible.KVStore, owner fungible.Address, amt amount.Amount) error
	// Balance returns the balance of the account, zero when absent.
	Balance(db fungible.ReadOnlyKVStore, owner fungible.Address) (amount.Amount, error)
	// Credit adds amt to the account. The balance saturates at
	// amount.Max, this never fails because of the amount.
	Credit(ctx fungible.Context, db fungible.KVStore, owner fungible.Address, amt amount.Amount) error
	// Debit subtracts amt from the account. When the balance is too
	// small ErrInsufficientBalance is returned and nothing is written.
	Debit(ctx fungible.Context, db fungible.KVStore, owner fungible.Address, amt amount.Amount) error
	// Accounts returns all stored accounts ordered by address.
	Accounts(db fungible.ReadOnlyKVStore) ([]AccountBalance, error)
}

// AccountBalance is a read only view of a single account.
type AccountBalance struct {
	Owner   fungible.Address `json:"owner"`
	Balance amount.Amount    `json:"balance"`
}

// BaseLedger stores accounts in an orm bucket.
type BaseLedger struct {
	bucket orm.ModelBucket
}

var _ Ledger = BaseLedger{}

// NewLedger returns a ledger over the default accounts bucket.
func NewLedger() BaseLedger {
	return BaseLedger{bucket: NewBucket()}
}

func (l BaseLedger) Initialize(ctx fungible.Context, db fungible.KVStore, owner fungible.Address, amt amount.Amount) error {
	if err := validAmount(amt); err != nil {
		return err
	}
	if db.Has(initKey) {
		return errors.Wrap(ErrAlreadyInitialized, "genesis account")
	}
	if err := l.save(db, owner, amt); err != nil {
		return err
	}
	db.Set(initKey, []byte{1})
	fungible.GetLogger(ctx).Info("initialize", "account", owner, "amount", amt)
	return nil
}

func (l BaseLedger) Balance(db fungible.ReadOnlyKVStore, owner fungible.Address) (amount.Amount, error) {
	var acc Account
	switch err := l.bucket.One(db, owner, &acc); {
	case err == nil:
		return *acc.Balance, nil
	case errors.ErrNotFound.Is(err):
		return amount.Amount{}, nil
	default:
		return amount.Amount{}, errors.Wrap(err, "cannot load account")
	}
}

func (l BaseLedger) Credit(ctx fungible.Context, db fungible.KVStore, owner fungible.Address, amt amount.Amount) error {
	if err := validAmount(amt); err != nil {
		return err
	}
	balance, err := l.Balance(db, owner)
	if err != nil {
		return err
	}
	if err := l.save(db, owner, balance.SaturatingAdd(amt)); err != nil {
		return err
	}
	fungible.GetLogger(ctx).Info("credit", "account", owner, "amount", amt)
	return nil
}

func (l BaseLedger) Debit(ctx fungible.Context, db fungible.KVStore, owner fungible.Address, amt amount.Amount) error {
	if err := validAmount(amt); err != nil {
		return err
	}
	balance, err := l.Balance(db, owner)
	if err != nil {
		return err
	}
	left, err := balance.CheckedSub(amt)
	if err != nil {
		return errors.Wrapf(ErrInsufficientBalance, "%s has %s, needs %s", owner, balance, amt)
	}
	if err := l.save(db, owner, left); err != nil {
		return err
	}
	fungible.GetLogger(ctx).Info("debit", "account", owner, "amount", amt)
	return nil
}

func (l BaseLedger) Accounts(db fungible.ReadOnlyKVStore) ([]AccountBalance, error) {
	var accounts []Account
	keys, err := l.bucket.Prefix(db, nil, &accounts)
	if err != nil {
		return nil, errors.Wrap(err, "cannot load accounts")
	}
	res := make([]AccountBalance, len(keys))
	for i, key := range keys {
		res[i] = AccountBalance{
			Owner:   fungible.Address(key),
			Balance: *accounts[i].Balance,
		}
	}
	return res, nil
}

func (l BaseLedger) save(db fungible.KVStore, owner fungible.Address, balance amount.Amount) error {
	if err := owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return l.bucket.Put(db, owner, &Account{Balance: &balance})
}

// validAmount is ErrAmount for anything SaturatingAdd and CheckedSub are
// not defined on.
func validAmount(amt amount.Amount) error {
	if err := amt.Validate(); err != nil {
		return errors.Wrapf(errors.ErrAmount, "%d.%09d: %s", amt.Whole, amt.Fractional, err)
	}
	return nil
}
