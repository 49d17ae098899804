package client

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/amount"
	fungibled "github.com/iov-one/fungible/cmd/fungibled/app"
	"github.com/iov-one/fungible/crypto"
	"github.com/iov-one/fungible/x/ledger"
	"github.com/iov-one/fungible/x/relay"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

// testChain is an in process fungibled chain.
type testChain struct {
	id       string
	relayKey *crypto.PrivateKey
	endpoint *Endpoint
}

// newTestChain starts a chain funding owner with amt. Peers are given as
// chain ID to relay public key.
func newTestChain(t *testing.T, id string, owner fungible.Address, amt amount.Amount, relayKey *crypto.PrivateKey, peers map[string]*crypto.PublicKey) *testChain {
	t.Helper()

	var gen relay.Genesis
	for chainID, key := range peers {
		gen.Peers = append(gen.Peers, relay.GenesisPeer{
			ChainID: chainID,
			Pubkey:  hex.EncodeToString(key.Ed25519),
		})
	}
	state, err := json.Marshal(map[string]interface{}{
		"ledger": ledger.Genesis{Owner: owner, Amount: amt},
		"relay":  gen,
	})
	require.NoError(t, err)

	a, err := fungibled.Application("fungibled", fungibled.Stack(), fungibled.TxDecoder, "", false)
	require.NoError(t, err)
	a.WithInit(fungibled.Initializers())
	a.InitChain(abci.RequestInitChain{ChainId: id, AppStateBytes: state})
	a.Commit()

	return &testChain{
		id:       id,
		relayKey: relayKey,
		endpoint: NewEndpoint(id, NewAppConn(a)),
	}
}

// failingConn fails every call with err.
type failingConn struct {
	err error
}

func (c *failingConn) Query(context.Context, abci.RequestQuery) (abci.ResponseQuery, error) {
	return abci.ResponseQuery{}, c.err
}

func (c *failingConn) BroadcastTx(context.Context, []byte) (*fungible.DeliverResult, error) {
	return nil, c.err
}
