package sigs

import (
	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/crypto"
	"github.com/iov-one/fungible/errors"
	"github.com/iov-one/fungible/orm"
)

// BucketName prefixes the signer records, keyed by key address.
const BucketName = "sigs"

// Sequences stay below 2^53 so that javascript clients can count them
// without losing precision.
const maxSequenceValue = 1<<53 - 1

var _ orm.Model = (*UserData)(nil)

func (u *UserData) Validate() error {
	switch {
	case u.Sequence < 0:
		return errors.Wrap(ErrInvalidSequence, "negative")
	case u.Pubkey == nil:
		return errors.Wrap(errors.ErrEmpty, "pubkey")
	}
	return u.Pubkey.Validate()
}

// CheckAndIncrementSequence consumes expected if it is the next sequence
// of the signer.
func (u *UserData) CheckAndIncrementSequence(expected int64) error {
	if expected != u.Sequence {
		return errors.Wrapf(ErrInvalidSequence, "want %d, got %d", u.Sequence, expected)
	}
	if u.Sequence >= maxSequenceValue {
		return errors.Wrap(errors.ErrOverflow, "sequence")
	}
	u.Sequence++
	return nil
}

func NewBucket() orm.ModelBucket {
	return orm.NewModelBucket(BucketName, &UserData{})
}

// getOrCreate returns the stored record of pubkey or a new one at
// sequence zero.
func getOrCreate(db fungible.ReadOnlyKVStore, b orm.ModelBucket, pubkey *crypto.PublicKey) (*UserData, error) {
	user := UserData{Pubkey: pubkey}
	if err := b.One(db, pubkey.Address(), &user); err != nil && !errors.ErrNotFound.Is(err) {
		return nil, err
	}
	return &user, nil
}
