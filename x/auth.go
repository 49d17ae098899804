package x

import (
	"github.com/iov-one/fungible"
)

// Authenticator tells a handler who authorized the transaction in the
// context. Handlers take one in their constructor, so the signature
// scheme stays replaceable.
type Authenticator interface {
	// GetConditions lists every condition satisfied in ctx, the main
	// signer first.
	GetConditions(fungible.Context) []fungible.Condition
	// HasAddress reports whether any of those conditions resolves to
	// addr.
	HasAddress(fungible.Context, fungible.Address) bool
}

// MainSigner returns the first condition of auth, or nil when nobody
// signed.
func MainSigner(ctx fungible.Context, auth Authenticator) fungible.Condition {
	if conds := auth.GetConditions(ctx); len(conds) > 0 {
		return conds[0]
	}
	return nil
}

// AnyAddress reports whether one of conds resolves to addr. It is the
// usual HasAddress implementation.
func AnyAddress(conds []fungible.Condition, addr fungible.Address) bool {
	for _, c := range conds {
		if addr.Equals(c.Address()) {
			return true
		}
	}
	return false
}
