package ledger

import (
	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/errors"
	"github.com/iov-one/fungible/x"
)

// Authenticate succeeds only if the transaction has a caller and the
// caller is the owner of the account. The caller is the main signer,
// other signers of the transaction do not count. It must pass before
// anything is debited from owner.
func Authenticate(ctx fungible.Context, auth x.Authenticator, owner fungible.Address) error {
	caller := x.MainSigner(ctx, auth)
	if caller == nil {
		return errors.Wrap(ErrIncorrectAuthentication, "no caller")
	}
	if len(owner) == 0 || !owner.Equals(caller.Address()) {
		return errors.Wrapf(ErrIncorrectAuthentication, "caller is not %s", owner)
	}
	return nil
}
