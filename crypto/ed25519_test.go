package crypto

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/fungible/errors"
	"github.com/iov-one/fungible/fungibletest/assert"
)

func TestVerify(t *testing.T) {
	key := GenPrivKeyEd25519()
	transfer, credit := []byte("transfer 50000"), []byte("credit 50000")

	sigTransfer, err := key.Sign(transfer)
	assert.Nil(t, err)
	sigCredit, err := key.Sign(credit)
	assert.Nil(t, err)

	cases := map[string]struct {
		key  *PublicKey
		msg  []byte
		sig  *Signature
		want bool
	}{
		"matching":         {key.PublicKey(), transfer, sigTransfer, true},
		"other message":    {key.PublicKey(), transfer, sigCredit, false},
		"other key":        {GenPrivKeyEd25519().PublicKey(), transfer, sigTransfer, false},
		"empty signature":  {key.PublicKey(), transfer, &Signature{}, false},
		"nil signature":    {key.PublicKey(), transfer, nil, false},
		"short signature":  {key.PublicKey(), transfer, &Signature{Ed25519: sigTransfer.Ed25519[:10]}, false},
		"empty public key": {&PublicKey{}, transfer, sigTransfer, false},
		"nil public key":   {nil, transfer, sigTransfer, false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.key.Verify(tc.msg, tc.sig))
		})
	}
}

func TestSignatureSurvivesEncoding(t *testing.T) {
	key := PrivKeyEd25519FromSeed(bytes.Repeat([]byte{7}, 32))
	sig, err := key.Sign([]byte("packet"))
	assert.Nil(t, err)

	raw, err := proto.Marshal(sig)
	assert.Nil(t, err)
	var decoded Signature
	assert.Nil(t, proto.Unmarshal(raw, &decoded))
	assert.Equal(t, true, key.PublicKey().Verify([]byte("packet"), &decoded))
}

func TestConditionAndAddress(t *testing.T) {
	a := GenPrivKeyEd25519().PublicKey()
	b := GenPrivKeyEd25519().PublicKey()

	assert.Nil(t, a.Condition().Validate())
	ext, typ, data, err := a.Condition().Parse()
	assert.Nil(t, err)
	assert.Equal(t, ExtensionName, ext)
	assert.Equal(t, "ed25519", typ)
	assert.Equal(t, a.Ed25519, data)

	if a.Address().Equals(b.Address()) {
		t.Fatal("two keys share an address")
	}
	assert.Equal(t, a.Condition().Address(), a.Address())

	var empty PublicKey
	assert.Nil(t, empty.Condition())
	assert.Nil(t, empty.Address())
}

func TestPublicKeyFromHex(t *testing.T) {
	pub := GenPrivKeyEd25519().PublicKey()

	got, err := PublicKeyFromHex(hex.EncodeToString(pub.Ed25519))
	assert.Nil(t, err)
	assert.Equal(t, pub, got)

	_, err = PublicKeyFromHex("zz")
	assert.IsErr(t, errors.ErrInput, err)
	_, err = PublicKeyFromHex("abcd")
	assert.IsErr(t, errors.ErrInput, err)
}

func TestFromSeed(t *testing.T) {
	seed := make([]byte, 32)
	a, b := PrivKeyEd25519FromSeed(seed), PrivKeyEd25519FromSeed(seed)
	assert.Equal(t, a.Ed25519, b.Ed25519)
	// the private key carries its seed followed by the public key
	assert.Equal(t, seed, a.Ed25519[:32])
	assert.Equal(t, "3b6a27bcceb6a42d62a3a8d02a6f0d73653215771de243a63ac048a18b59da29", hex.EncodeToString(a.PublicKey().Ed25519))

	assert.Panics(t, func() { PrivKeyEd25519FromSeed(nil) })
	assert.Panics(t, func() { PrivKeyEd25519FromSeed([]byte{1}) })
}

func TestSignWithEmptyKey(t *testing.T) {
	_, err := (&PrivateKey{}).Sign([]byte("foo"))
	assert.IsErr(t, errors.ErrInput, err)
}
