package fungibletest

import (
	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/crypto"
)

// NewKey returns a random ed25519 private key.
func NewKey() *crypto.PrivateKey {
	return crypto.GenPrivKeyEd25519()
}

// NewCondition returns the signature condition of a random key.
func NewCondition() fungible.Condition {
	return NewKey().PublicKey().Condition()
}

// NewAddress returns the account address of a random key.
func NewAddress() fungible.Address {
	return NewCondition().Address()
}
