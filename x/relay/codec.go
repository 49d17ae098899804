package relay

import (
	"github.com/gogo/protobuf/proto"
	"github.com/gogo/protobuf/types"
	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/crypto"
)

func init() {
	proto.RegisterType((*Packet)(nil), "relay.Packet")
	proto.RegisterType((*DeliverPacketMsg)(nil), "relay.DeliverPacketMsg")
	proto.RegisterType((*Inbox)(nil), "relay.Inbox")
	proto.RegisterType((*Peer)(nil), "relay.Peer")
}

// Packet is a message in transit from the Source to the Destination chain.
type Packet struct {
	Source      string `protobuf:"bytes,1,opt,name=source,proto3" json:"source,omitempty"`
	Destination string `protobuf:"bytes,2,opt,name=destination,proto3" json:"destination,omitempty"`
	// Sequence is counted per destination, starting with 1.
	Sequence int64 `protobuf:"varint,3,opt,name=sequence,proto3" json:"sequence,omitempty"`
	// RequireAuth packets carry the signer of the transaction that sent
	// them. The signer is authenticated when the message is delivered.
	RequireAuth bool               `protobuf:"varint,4,opt,name=require_auth,json=requireAuth,proto3" json:"require_auth,omitempty"`
	Signer      fungible.Condition `protobuf:"bytes,5,opt,name=signer,proto3,casttype=github.com/iov-one/fungible.Condition" json:"signer,omitempty"`
	Msg         *types.Any         `protobuf:"bytes,6,opt,name=msg,proto3" json:"msg,omitempty"`
}

func (m *Packet) Reset()         { *m = Packet{} }
func (m *Packet) String() string { return proto.CompactTextString(m) }
func (*Packet) ProtoMessage()    {}

// DeliverPacketMsg submits a packet to its destination chain. Signature
// is created by the key of the source chain over the packet commitment.
type DeliverPacketMsg struct {
	Packet    *Packet           `protobuf:"bytes,1,opt,name=packet,proto3" json:"packet,omitempty"`
	Signature *crypto.Signature `protobuf:"bytes,2,opt,name=signature,proto3" json:"signature,omitempty"`
}

func (m *DeliverPacketMsg) Reset()         { *m = DeliverPacketMsg{} }
func (m *DeliverPacketMsg) String() string { return proto.CompactTextString(m) }
func (*DeliverPacketMsg) ProtoMessage()    {}

// Inbox tracks the delivery progress of packets from a single source
// chain. The source chain ID is the key.
type Inbox struct {
	// Sequence of the last delivered packet.
	Sequence int64 `protobuf:"varint,1,opt,name=sequence,proto3" json:"sequence,omitempty"`
}

func (m *Inbox) Reset()         { *m = Inbox{} }
func (m *Inbox) String() string { return proto.CompactTextString(m) }
func (*Inbox) ProtoMessage()    {}

// Peer is a connected chain. Packets are sent only to peers and accepted
// only from peers signed with Pubkey.
type Peer struct {
	ChainID string            `protobuf:"bytes,1,opt,name=chain_id,json=chainId,proto3" json:"chain_id,omitempty"`
	Pubkey  *crypto.PublicKey `protobuf:"bytes,2,opt,name=pubkey,proto3" json:"pubkey,omitempty"`
}

func (m *Peer) Reset()         { *m = Peer{} }
func (m *Peer) String() string { return proto.CompactTextString(m) }
func (*Peer) ProtoMessage()    {}
