package relay

import (
	"github.com/gogo/protobuf/types"
	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/crypto"
	"github.com/iov-one/fungible/errors"
	amino "github.com/tendermint/go-amino"
)

const pathDeliverPacketMsg = "relay/deliver"

// NewPacket wraps msg into a packet. Sequence is assigned by the outbox.
func NewPacket(source, destination string, msg fungible.Msg) (*Packet, error) {
	any, err := types.MarshalAny(msg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrMsg, err.Error())
	}
	return &Packet{
		Source:      source,
		Destination: destination,
		Msg:         any,
	}, nil
}

// Validate checks the packet is well formed. It does not check the
// carried message.
func (p *Packet) Validate() error {
	if !fungible.IsValidChainID(p.Source) {
		return errors.Wrapf(errors.ErrInput, "source %q", p.Source)
	}
	if !fungible.IsValidChainID(p.Destination) {
		return errors.Wrapf(errors.ErrInput, "destination %q", p.Destination)
	}
	if p.Source == p.Destination {
		return errors.Wrap(errors.ErrInput, "source is the destination")
	}
	if p.Sequence < 1 {
		return errors.Wrapf(errors.ErrInput, "sequence %d", p.Sequence)
	}
	if p.RequireAuth {
		if err := p.Signer.Validate(); err != nil {
			return errors.Wrap(err, "signer")
		}
	}
	if p.Msg == nil || p.Msg.TypeUrl == "" {
		return errors.Wrap(errors.ErrEmpty, "msg")
	}
	return nil
}

// GetMsg decodes the carried message.
func (p *Packet) GetMsg() (fungible.Msg, error) {
	if p.Msg == nil {
		return nil, errors.Wrap(errors.ErrEmpty, "msg")
	}
	var any types.DynamicAny
	if err := types.UnmarshalAny(p.Msg, &any); err != nil {
		return nil, errors.Wrap(errors.ErrMsg, err.Error())
	}
	msg, ok := any.Message.(fungible.Msg)
	if !ok {
		return nil, errors.Wrapf(errors.ErrType, "%T is not a message", any.Message)
	}
	return msg, nil
}

// commitment is the canonical form of a packet that the source chain key
// signs.
type commitment struct {
	Source      string
	Destination string
	Sequence    int64
	RequireAuth bool
	Signer      []byte
	MsgType     string
	MsgValue    []byte
}

// Commitment returns the bytes that prove the packet origin once signed
// by the source chain.
func (p *Packet) Commitment() ([]byte, error) {
	c := commitment{
		Source:      p.Source,
		Destination: p.Destination,
		Sequence:    p.Sequence,
		RequireAuth: p.RequireAuth,
		Signer:      p.Signer,
	}
	if p.Msg != nil {
		c.MsgType = p.Msg.TypeUrl
		c.MsgValue = p.Msg.Value
	}
	bz, err := amino.MarshalBinaryBare(c)
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return bz, nil
}

// Sign creates the origin signature of the packet.
func Sign(signer crypto.Signer, p *Packet) (*DeliverPacketMsg, error) {
	bz, err := p.Commitment()
	if err != nil {
		return nil, err
	}
	sig, err := signer.Sign(bz)
	if err != nil {
		return nil, err
	}
	return &DeliverPacketMsg{Packet: p, Signature: sig}, nil
}

var _ fungible.Msg = (*DeliverPacketMsg)(nil)

// Path returns the routing path for this message.
func (DeliverPacketMsg) Path() string {
	return pathDeliverPacketMsg
}

// Validate requires a valid, signed packet.
func (m *DeliverPacketMsg) Validate() error {
	if m.Packet == nil {
		return errors.Wrap(errors.ErrEmpty, "packet")
	}
	if err := m.Packet.Validate(); err != nil {
		return errors.Wrap(err, "packet")
	}
	if m.Signature == nil {
		return errors.Wrap(ErrBadOrigin, "missing signature")
	}
	return nil
}
