package relay

import (
	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/crypto"
	"github.com/iov-one/fungible/errors"
)

// GenesisPeer is a peer as declared in the genesis file. Pubkey is a hex
// encoded ed25519 key.
type GenesisPeer struct {
	ChainID string `json:"chain_id"`
	Pubkey  string `json:"pubkey"`
}

// Genesis is the content of the "relay" genesis section.
type Genesis struct {
	Peers []GenesisPeer `json:"peers"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file
type Initializer struct{}

var _ fungible.Initializer = (*Initializer)(nil)

// FromGenesis registers all peers.
func (*Initializer) FromGenesis(opts fungible.Options, db fungible.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions("relay", &gen); err != nil {
		return err
	}
	for i, gp := range gen.Peers {
		key, err := crypto.PublicKeyFromHex(gp.Pubkey)
		if err != nil {
			return errors.Wrapf(err, "peer %d", i)
		}
		if err := SetPeer(db, &Peer{ChainID: gp.ChainID, Pubkey: key}); err != nil {
			return errors.Wrapf(err, "peer %d", i)
		}
	}
	return nil
}
