package app

import (
	"github.com/gogo/protobuf/proto"
	"github.com/gogo/protobuf/types"
	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/errors"
	"github.com/iov-one/fungible/x/sigs"
)

func init() {
	proto.RegisterType((*Tx)(nil), "fungibled.Tx")
}

// Tx is the transaction accepted by the fungibled application. Msg holds
// any registered message type, so new extensions do not change the
// transaction format.
type Tx struct {
	Signatures []*sigs.StdSignature `protobuf:"bytes,1,rep,name=signatures,proto3" json:"signatures,omitempty"`
	Msg        *types.Any           `protobuf:"bytes,2,opt,name=msg,proto3" json:"msg,omitempty"`
}

func (m *Tx) Reset()         { *m = Tx{} }
func (m *Tx) String() string { return proto.CompactTextString(m) }
func (*Tx) ProtoMessage()    {}

// make sure tx fulfills all interfaces
var _ fungible.Tx = (*Tx)(nil)
var _ sigs.SignedTx = (*Tx)(nil)

// NewTx wraps msg into an unsigned transaction.
func NewTx(msg fungible.Msg) (*Tx, error) {
	tx := new(Tx)
	if err := tx.SetMsg(msg); err != nil {
		return nil, err
	}
	return tx, nil
}

// SetMsg replaces the carried message.
func (tx *Tx) SetMsg(msg fungible.Msg) error {
	any, err := types.MarshalAny(msg)
	if err != nil {
		return errors.Wrap(errors.ErrMsg, err.Error())
	}
	tx.Msg = any
	return nil
}

// GetMsg decodes the carried message.
func (tx *Tx) GetMsg() (fungible.Msg, error) {
	if tx.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "msg")
	}
	var any types.DynamicAny
	if err := types.UnmarshalAny(tx.Msg, &any); err != nil {
		return nil, errors.Wrap(errors.ErrMsg, err.Error())
	}
	msg, ok := any.Message.(fungible.Msg)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T is not a message", any.Message)
	}
	return msg, nil
}

// GetSignatures returns all signatures attached to the transaction.
func (tx *Tx) GetSignatures() []*sigs.StdSignature {
	return tx.Signatures
}

// GetSignBytes returns the bytes to sign...
func (tx *Tx) GetSignBytes() ([]byte, error) {
	// temporarily unset the signatures, as the sign bytes
	// should only come from the data itself, not previous signatures
	sigs := tx.Signatures
	tx.Signatures = nil

	bz, err := proto.Marshal(tx)

	// reset the signatures after calculating the bytes
	tx.Signatures = sigs
	return bz, err
}

// TxDecoder creates a Tx and unmarshals bytes into it
func TxDecoder(bz []byte) (fungible.Tx, error) {
	tx := new(Tx)
	if err := proto.Unmarshal(bz, tx); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return tx, nil
}
