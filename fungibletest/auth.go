package fungibletest

import (
	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/x"
)

// Auth authenticates a fixed set of conditions regardless of the
// context. Signer, when set, is reported after Signers.
type Auth struct {
	Signer  fungible.Condition
	Signers []fungible.Condition
}

var _ x.Authenticator = (*Auth)(nil)

func (a *Auth) GetConditions(fungible.Context) []fungible.Condition {
	all := append([]fungible.Condition(nil), a.Signers...)
	if a.Signer != nil {
		all = append(all, a.Signer)
	}
	return all
}

func (a *Auth) HasAddress(ctx fungible.Context, addr fungible.Address) bool {
	return x.AnyAddress(a.GetConditions(ctx), addr)
}
