package sigs

import (
	"context"

	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/x"
)

type ctxKey struct{}

// Only the decorator sets signers.
func withSigners(ctx fungible.Context, signers []fungible.Condition) fungible.Context {
	return context.WithValue(ctx, ctxKey{}, signers)
}

// Authenticate reads the signers verified by the Decorator.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

func (Authenticate) GetConditions(ctx fungible.Context) []fungible.Condition {
	signers, _ := ctx.Value(ctxKey{}).([]fungible.Condition)
	return signers
}

func (a Authenticate) HasAddress(ctx fungible.Context, addr fungible.Address) bool {
	return x.AnyAddress(a.GetConditions(ctx), addr)
}
