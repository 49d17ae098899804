package sigs

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/fungibletest"
)

// StdTx is a signed transaction used in tests.
type StdTx struct {
	fungibletest.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ fungible.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	msg := &fungibletest.Msg{RoutePath: "test/sigs", Serialized: payload}
	return &StdTx{Tx: fungibletest.Tx{Msg: msg}}
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *StdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return proto.Marshal(msg)
}

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []fungible.Condition
}

var _ fungible.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx fungible.Context, store fungible.KVStore, tx fungible.Tx) (*fungible.CheckResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &fungible.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx fungible.Context, store fungible.KVStore, tx fungible.Tx) (*fungible.DeliverResult, error) {
	s.Signers = Authenticate{}.GetConditions(ctx)
	return &fungible.DeliverResult{}, nil
}
