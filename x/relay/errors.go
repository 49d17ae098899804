package relay

import "github.com/iov-one/fungible/errors"

// x/relay reserves 140 ~ 149.
var (
	// ErrUnknownPeer is returned for packets from a chain that is not
	// registered as a peer.
	ErrUnknownPeer = errors.Register(140, "unknown peer")

	// ErrOutOfOrder is returned for packets that skip over an
	// undelivered sequence.
	ErrOutOfOrder = errors.Register(141, "packet out of order")

	// ErrBadOrigin is returned when the origin signature of a packet
	// does not verify.
	ErrBadOrigin = errors.Register(142, "bad packet origin")
)
