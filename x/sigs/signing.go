package sigs

import (
	"crypto/sha512"
	"encoding/binary"

	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/crypto"
	"github.com/iov-one/fungible/errors"
)

// signVersion opens every signed payload. Bump it when the layout below
// changes.
var signVersion = [4]byte{0, 0xCA, 0xFE, 0}

/*
BuildSignBytes returns the digest a signer signs for a transaction:

  sha512(version | len(chainID) | chainID | sequence | payload)

version is 4 bytes, len(chainID) one byte and the sequence a big endian
int64. Binding the chain id and the sequence means a signature is valid
on one chain only, and only once.
*/
func BuildSignBytes(payload []byte, chainID string, seq int64) ([]byte, error) {
	if seq < 0 {
		return nil, errors.Wrap(ErrInvalidSequence, "negative")
	}
	if !fungible.IsValidChainID(chainID) {
		return nil, errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
	}

	h := sha512.New()
	h.Write(signVersion[:])
	h.Write([]byte{byte(len(chainID))})
	h.Write([]byte(chainID))
	var seqBytes [8]byte
	binary.BigEndian.PutUint64(seqBytes[:], uint64(seq))
	h.Write(seqBytes[:])
	h.Write(payload)
	return h.Sum(nil), nil
}

// SignTx signs tx for chainID with the given sequence of the signer.
func SignTx(signer crypto.Signer, tx SignedTx, chainID string, seq int64) (*StdSignature, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(payload, chainID, seq)
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(digest)
	if err != nil {
		return nil, err
	}
	return &StdSignature{Pubkey: signer.PublicKey(), Signature: sig, Sequence: seq}, nil
}

// VerifyTxSignatures checks every signature of tx and returns the
// conditions of the signers in signature order. The first invalid
// signature fails the whole transaction.
func VerifyTxSignatures(db fungible.KVStore, tx SignedTx, chainID string) ([]fungible.Condition, error) {
	payload, err := tx.GetSignBytes()
	if err != nil {
		return nil, errors.Wrap(errors.ErrMsg, err.Error())
	}
	var signers []fungible.Condition
	for _, sig := range tx.GetSignatures() {
		cond, err := VerifySignature(db, sig, payload, chainID)
		if err != nil {
			return nil, err
		}
		signers = append(signers, cond)
	}
	return signers, nil
}

// VerifySignature checks a single signature and consumes its sequence.
// The signer record is created on first use.
func VerifySignature(db fungible.KVStore, sig *StdSignature, payload []byte, chainID string) (fungible.Condition, error) {
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	digest, err := BuildSignBytes(payload, chainID, sig.Sequence)
	if err != nil {
		return nil, err
	}

	bucket := NewBucket()
	user, err := getOrCreate(db, bucket, sig.Pubkey)
	if err != nil {
		return nil, err
	}
	if !user.Pubkey.Verify(digest, sig.Signature) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "invalid signature")
	}
	if err := user.CheckAndIncrementSequence(sig.Sequence); err != nil {
		return nil, err
	}
	if err := bucket.Put(db, user.Pubkey.Address(), user); err != nil {
		return nil, err
	}
	return user.Pubkey.Condition(), nil
}
