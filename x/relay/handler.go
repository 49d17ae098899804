package relay

import (
	"context"

	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/errors"
	"github.com/iov-one/fungible/x"
)

// RegisterRoutes registers the packet delivery handler. Delivered
// messages are dispatched to inbound, which must not be reachable by
// user submitted transactions.
func RegisterRoutes(r fungible.Registry, inbound fungible.Handler) {
	r.Handle(pathDeliverPacketMsg, NewDeliverHandler(inbound))
}

// RegisterQuery registers "/inbox" and "/peers".
func RegisterQuery(qr fungible.QueryRouter) {
	NewInboxBucket().Register("inbox", qr)
	NewPeerBucket().Register("peers", qr)
}

// DeliverHandler accepts packets from peers and hands the carried
// messages over to the inbound handler.
type DeliverHandler struct {
	inbound fungible.Handler
}

var _ fungible.Handler = DeliverHandler{}

// NewDeliverHandler creates a handler for DeliverPacketMsg.
func NewDeliverHandler(inbound fungible.Handler) DeliverHandler {
	return DeliverHandler{inbound: inbound}
}

func (h DeliverHandler) Check(ctx fungible.Context, db fungible.KVStore, tx fungible.Tx) (*fungible.CheckResult, error) {
	packet, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	inner, err := packetTx(ctx, packet)
	if err != nil {
		// will be skipped on delivery
		return &fungible.CheckResult{}, nil
	}
	return h.inbound.Check(ctx, db, inner)
}

func (h DeliverHandler) Deliver(ctx fungible.Context, db fungible.KVStore, tx fungible.Tx) (*fungible.DeliverResult, error) {
	packet, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	logger := fungible.GetLogger(ctx).With(
		"source", packet.Source,
		"destination", packet.Destination,
		"sequence", packet.Sequence)

	res := &fungible.DeliverResult{}
	inner, err := packetTx(ctx, packet)
	if err != nil {
		// A message that cannot be decoded will never be. Skip it so
		// that the packets after it can be delivered.
		logger.Error("skip packet", "err", err)
		res.Log = "skipped: " + err.Error()
	} else {
		res, err = h.inbound.Deliver(withPacket(ctx, packet), db, inner)
		if err != nil {
			return nil, errors.Wrap(err, "inbound")
		}
	}

	inbox := &Inbox{Sequence: packet.Sequence}
	if err := NewInboxBucket().Put(db, []byte(packet.Source), inbox); err != nil {
		return nil, err
	}
	logger.Info("deliver")
	return res, nil
}

// validate checks the packet is the next expected one from a known peer
// and signed by it.
func (h DeliverHandler) validate(ctx fungible.Context, db fungible.KVStore, tx fungible.Tx) (*Packet, error) {
	var msg DeliverPacketMsg
	if err := fungible.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	packet := msg.Packet
	if local := fungible.GetChainID(ctx); packet.Destination != local {
		return nil, errors.Wrapf(errors.ErrInput, "packet for %s delivered to %s", packet.Destination, local)
	}

	peer, err := GetPeer(db, packet.Source)
	if err != nil {
		return nil, err
	}
	bz, err := packet.Commitment()
	if err != nil {
		return nil, err
	}
	if !peer.Pubkey.Verify(bz, msg.Signature) {
		return nil, errors.Wrapf(ErrBadOrigin, "not signed by %s", packet.Source)
	}

	last, err := InboxSequence(db, packet.Source)
	if err != nil {
		return nil, err
	}
	switch next := last + 1; {
	case packet.Sequence < next:
		return nil, errors.Wrapf(errors.ErrDuplicate, "packet %d already delivered", packet.Sequence)
	case packet.Sequence > next:
		return nil, errors.Wrapf(ErrOutOfOrder, "want packet %d, got %d", next, packet.Sequence)
	}
	return packet, nil
}

// packetTx decodes the carried message into a transaction for the inbound
// handler.
func packetTx(ctx fungible.Context, p *Packet) (fungible.Tx, error) {
	msg, err := p.GetMsg()
	if err != nil {
		return nil, err
	}
	if err := msg.Validate(); err != nil {
		return nil, errors.Wrap(err, "packet msg")
	}
	return &inboundTx{msg: msg}, nil
}

type inboundTx struct {
	msg fungible.Msg
}

func (tx *inboundTx) GetMsg() (fungible.Msg, error) {
	return tx.msg, nil
}

type contextKey int

const contextKeyPacket contextKey = iota

func withPacket(ctx fungible.Context, p *Packet) fungible.Context {
	return context.WithValue(ctx, contextKeyPacket, p)
}

// Authenticate implements x.Authenticator for inbound handlers. It
// provides the signer of the transaction that sent the packet being
// delivered, if the packet requires authentication.
type Authenticate struct{}

var _ x.Authenticator = Authenticate{}

// GetConditions returns the signer of the sending transaction.
func (Authenticate) GetConditions(ctx fungible.Context) []fungible.Condition {
	p, _ := ctx.Value(contextKeyPacket).(*Packet)
	if p == nil || !p.RequireAuth {
		return nil
	}
	return []fungible.Condition{p.Signer}
}

// HasAddress returns true if addr signed the sending transaction.
func (a Authenticate) HasAddress(ctx fungible.Context, addr fungible.Address) bool {
	return x.AnyAddress(a.GetConditions(ctx), addr)
}

// PacketSource returns the chain that sent the packet being delivered, or an
// empty string outside of packet delivery.
func PacketSource(ctx fungible.Context) string {
	p, _ := ctx.Value(contextKeyPacket).(*Packet)
	if p == nil {
		return ""
	}
	return p.Source
}
