package sigs

import (
	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/errors"
)

// NextNonce returns the sequence the next signature of signer must carry.
// A key that never signed starts at zero.
func NextNonce(db fungible.ReadOnlyKVStore, signer fungible.Address) (int64, error) {
	var user UserData
	switch err := NewBucket().One(db, signer, &user); {
	case errors.ErrNotFound.Is(err):
		return 0, nil
	case err != nil:
		return 0, errors.Wrap(err, "load signer")
	}
	return user.Sequence, nil
}
