package crypto

import (
	"github.com/stellar/go/exp/crypto/derivation"

	"github.com/iov-one/fungible/errors"
)

// DefaultKeyPath is the SLIP-0010 path of the first ledger key.
const DefaultKeyPath = "m/44'/234'/0'"

// DeriveKey derives the ed25519 key at path from a master seed, following
// SLIP-0010. Only hardened paths such as m/44'/234'/0' exist for ed25519.
// The same seed and path always give the same key.
func DeriveKey(seed []byte, path string) (*PrivateKey, error) {
	if len(seed) < 16 {
		return nil, errors.Wrap(errors.ErrInput, "seed shorter than 16 bytes")
	}
	k, err := derivation.DeriveForPath(path, seed)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "path %q: %s", path, err)
	}
	return PrivKeyEd25519FromSeed(k.Key), nil
}
