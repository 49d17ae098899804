package relay

import (
	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/errors"
	"github.com/iov-one/fungible/orm"
	"github.com/iov-one/fungible/x"
)

// Outbox stores packets until a relayer picks them up. Packets are stored
// under "outbox:<destination>/<sequence>" with the sequence encoded so that
// byte order is numeric order.
type Outbox struct {
	packets orm.ModelBucket
	auth    x.Authenticator
}

// NewOutbox returns an outbox. auth provides the signer of packets that
// require authentication.
func NewOutbox(auth x.Authenticator) Outbox {
	return Outbox{
		packets: orm.NewModelBucket("outbox", &Packet{}),
		auth:    auth,
	}
}

// RegisterQuery registers the outbox as "/outbox". Query by a
// "<destination>/" prefix to list the packets of a destination.
func (o Outbox) RegisterQuery(qr fungible.QueryRouter) {
	o.packets.Register("outbox", qr)
}

// CanSend returns ErrUnknownPeer unless destination is a registered peer.
// Packets to any other chain would never be picked up by a relayer.
func (o Outbox) CanSend(db fungible.ReadOnlyKVStore, destination string) error {
	_, err := GetPeer(db, destination)
	return err
}

// Send stores msg for delivery to the destination chain. It is fire and
// forget: delivery happens after the current transaction is committed.
// Only peers can be sent to.
func (o Outbox) Send(ctx fungible.Context, db fungible.KVStore, destination string, msg fungible.Msg, requireAuth bool) error {
	if err := o.CanSend(db, destination); err != nil {
		return err
	}
	packet, err := NewPacket(fungible.GetChainID(ctx), destination, msg)
	if err != nil {
		return err
	}
	if requireAuth {
		signer := x.MainSigner(ctx, o.auth)
		if signer == nil {
			return errors.Wrap(errors.ErrUnauthorized, "packet requires a signer")
		}
		packet.RequireAuth = true
		packet.Signer = signer
	}

	seq := orm.NewSequence("outbox", destination)
	packet.Sequence = seq.NextInt(db)
	if err := packet.Validate(); err != nil {
		return errors.Wrap(err, "packet")
	}
	if err := o.packets.Put(db, PacketKey(destination, packet.Sequence), packet); err != nil {
		return err
	}
	fungible.GetLogger(ctx).Info("send",
		"source", packet.Source,
		"destination", destination,
		"sequence", packet.Sequence,
		"msg", msg.Path())
	return nil
}

// Packets returns up to limit packets to destination with a sequence
// greater than after, in order of sending.
func (o Outbox) Packets(db fungible.ReadOnlyKVStore, destination string, after int64, limit int) ([]*Packet, error) {
	var res []*Packet
	for seq := after + 1; len(res) < limit; seq++ {
		var p Packet
		err := o.packets.One(db, PacketKey(destination, seq), &p)
		if errors.ErrNotFound.Is(err) {
			break
		}
		if err != nil {
			return nil, err
		}
		res = append(res, &p)
	}
	return res, nil
}

// Latest returns the sequence of the last packet sent to destination.
func (o Outbox) Latest(db fungible.ReadOnlyKVStore, destination string) int64 {
	seq := orm.NewSequence("outbox", destination)
	return seq.Latest(db)
}

// PacketKey returns the outbox key of a packet.
func PacketKey(destination string, seq int64) []byte {
	key := append([]byte(destination), '/')
	return append(key, orm.EncodeSequence(seq)...)
}
