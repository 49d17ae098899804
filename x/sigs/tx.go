package sigs

import (
	"github.com/iov-one/fungible/errors"
)

// SignedTx is a transaction the Decorator can authenticate.
type SignedTx interface {
	// GetSignBytes is the payload every signature covers, before the
	// chain id and sequence are mixed in.
	GetSignBytes() ([]byte, error)
	GetSignatures() []*StdSignature
}

// Validate checks the signature is complete, not that it verifies.
func (s *StdSignature) Validate() error {
	if s.GetSequence() < 0 {
		return errors.Wrap(ErrInvalidSequence, "negative")
	}
	switch {
	case s.Pubkey == nil:
		return errors.Wrap(errors.ErrUnauthorized, "missing public key")
	case s.Pubkey.Validate() != nil:
		return errors.Wrap(errors.ErrUnauthorized, "invalid public key")
	case s.Signature == nil:
		return errors.Wrap(errors.ErrUnauthorized, "missing signature")
	}
	return nil
}
