package crypto

import (
	"encoding/hex"

	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/errors"
	"golang.org/x/crypto/ed25519"
)

var _ PubKey = (*PublicKey)(nil)
var _ Signer = (*PrivateKey)(nil)

// Verify reports whether sig is a signature of message by this key.
// Malformed keys and signatures never verify.
func (p *PublicKey) Verify(message []byte, sig *Signature) bool {
	key, raw := p.GetEd25519(), sig.GetEd25519()
	if len(key) != ed25519.PublicKeySize || len(raw) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(key), message, raw)
}

// Condition is sigs/ed25519/<key>, or nil for an empty key.
func (p *PublicKey) Condition() fungible.Condition {
	if len(p.GetEd25519()) == 0 {
		return nil
	}
	return fungible.NewCondition(ExtensionName, "ed25519", p.Ed25519)
}

// Address is the account controlled by this key.
func (p *PublicKey) Address() fungible.Address {
	return p.Condition().Address()
}

func (p *PublicKey) Validate() error {
	if n := len(p.GetEd25519()); n != ed25519.PublicKeySize {
		return errors.Wrapf(errors.ErrInput, "public key length %d", n)
	}
	return nil
}

// PublicKeyFromHex reads a key as printed by the keys command.
func PublicKeyFromHex(s string) (*PublicKey, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, "public key hex")
	}
	key := &PublicKey{Ed25519: raw}
	if err := key.Validate(); err != nil {
		return nil, err
	}
	return key, nil
}

func (p *PrivateKey) Sign(message []byte) (*Signature, error) {
	if len(p.GetEd25519()) != ed25519.PrivateKeySize {
		return nil, errors.Wrap(errors.ErrInput, "invalid private key")
	}
	return &Signature{Ed25519: ed25519.Sign(ed25519.PrivateKey(p.Ed25519), message)}, nil
}

func (p *PrivateKey) PublicKey() *PublicKey {
	pub := ed25519.PrivateKey(p.Ed25519).Public().(ed25519.PublicKey)
	return &PublicKey{Ed25519: pub}
}

// GenPrivKeyEd25519 creates a key from the system random source.
func GenPrivKeyEd25519() *PrivateKey {
	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		panic(err)
	}
	return &PrivateKey{Ed25519: priv}
}

// PrivKeyEd25519FromSeed derives a key from a 32 byte seed. It panics on
// any other seed size.
func PrivKeyEd25519FromSeed(seed []byte) *PrivateKey {
	return &PrivateKey{Ed25519: ed25519.NewKeyFromSeed(seed)}
}
