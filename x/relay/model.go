package relay

import (
	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/errors"
	"github.com/iov-one/fungible/orm"
)

var _ orm.Model = (*Packet)(nil)
var _ orm.Model = (*Inbox)(nil)
var _ orm.Model = (*Peer)(nil)

// Validate requires a positive sequence. A stored inbox has delivered at
// least one packet.
func (i *Inbox) Validate() error {
	if i.Sequence < 1 {
		return errors.Wrapf(errors.ErrState, "inbox sequence %d", i.Sequence)
	}
	return nil
}

// Validate requires a chain ID and an origin key.
func (p *Peer) Validate() error {
	if !fungible.IsValidChainID(p.ChainID) {
		return errors.Wrapf(errors.ErrInput, "peer chain id %q", p.ChainID)
	}
	if p.Pubkey == nil {
		return errors.Wrap(errors.ErrEmpty, "peer pubkey")
	}
	return p.Pubkey.Validate()
}

// NewInboxBucket returns the bucket of delivery progress, keyed by source
// chain ID.
func NewInboxBucket() orm.ModelBucket {
	return orm.NewModelBucket("inbox", &Inbox{})
}

// NewPeerBucket returns the bucket of known peers, keyed by chain ID.
func NewPeerBucket() orm.ModelBucket {
	return orm.NewModelBucket("peers", &Peer{})
}

// InboxSequence returns the sequence of the last packet delivered from
// source, zero if none was.
func InboxSequence(db fungible.ReadOnlyKVStore, source string) (int64, error) {
	var inbox Inbox
	switch err := NewInboxBucket().One(db, []byte(source), &inbox); {
	case err == nil:
		return inbox.Sequence, nil
	case errors.ErrNotFound.Is(err):
		return 0, nil
	default:
		return 0, err
	}
}

// GetPeer loads the peer registered for given chain.
func GetPeer(db fungible.ReadOnlyKVStore, chainID string) (*Peer, error) {
	var p Peer
	if err := NewPeerBucket().One(db, []byte(chainID), &p); err != nil {
		if errors.ErrNotFound.Is(err) {
			return nil, errors.Wrap(ErrUnknownPeer, chainID)
		}
		return nil, err
	}
	return &p, nil
}

// SetPeer registers or replaces a peer.
func SetPeer(db fungible.KVStore, p *Peer) error {
	return NewPeerBucket().Put(db, []byte(p.ChainID), p)
}
