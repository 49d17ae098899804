/*
Package client connects a relayer, or any other tool, to running
fungibled chains.

A Conn is the transport. HTTPConn talks to a tendermint node over its rpc
endpoint, AppConn drives an application in process, producing one block
per transaction. Endpoint builds the relay Source and Destination on top
of either one.
*/
package client

import (
	"context"
	"sync"

	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/app"
	"github.com/iov-one/fungible/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/rpc/client"
	tmtypes "github.com/tendermint/tendermint/types"
)

// Conn is the connection to a single chain.
type Conn interface {
	// Query runs an abci query against the last committed state.
	Query(ctx context.Context, req abci.RequestQuery) (abci.ResponseQuery, error)
	// BroadcastTx submits the transaction and returns once it is
	// committed in a block.
	BroadcastTx(ctx context.Context, tx []byte) (*fungible.DeliverResult, error)
}

// HTTPConn connects to a tendermint node rpc endpoint.
type HTTPConn struct {
	client client.Client
}

var _ Conn = (*HTTPConn)(nil)

// NewHTTPConn returns a connection to the node listening on remote, eg.
// "http://localhost:26657".
func NewHTTPConn(remote string) *HTTPConn {
	return &HTTPConn{client: client.NewHTTP(remote, "/websocket")}
}

// NewLocalConn returns a connection to a node running in the same
// process. Intended for tests that start a full node.
func NewLocalConn(c client.Client) *HTTPConn {
	return &HTTPConn{client: c}
}

func (c *HTTPConn) Query(ctx context.Context, req abci.RequestQuery) (abci.ResponseQuery, error) {
	if err := ctx.Err(); err != nil {
		return abci.ResponseQuery{}, err
	}
	res, err := c.client.ABCIQuery(req.Path, req.Data)
	if err != nil {
		return abci.ResponseQuery{}, errors.Wrap(errors.ErrNetwork, err.Error())
	}
	return res.Response, nil
}

func (c *HTTPConn) BroadcastTx(ctx context.Context, tx []byte) (*fungible.DeliverResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := c.client.BroadcastTxCommit(tmtypes.Tx(tx))
	if err != nil {
		return nil, errors.Wrap(errors.ErrNetwork, err.Error())
	}
	if res.CheckTx.IsErr() {
		return nil, errors.Wrap(errors.ABCIError(res.CheckTx.Code, res.CheckTx.Log), "check tx")
	}
	return fungible.ParseDeliverOrError(res.DeliverTx)
}

// AppConn runs transactions directly against an application. Every
// broadcast transaction is processed in its own block.
type AppConn struct {
	mu      sync.Mutex
	app     *app.BaseApp
	chainID string
	height  int64
}

var _ Conn = (*AppConn)(nil)

// NewAppConn wraps an application that has its chain ID set already.
func NewAppConn(a *app.BaseApp) *AppConn {
	return &AppConn{
		app:     a,
		chainID: a.ChainID(),
		height:  a.Info(abci.RequestInfo{}).LastBlockHeight,
	}
}

func (c *AppConn) Query(ctx context.Context, req abci.RequestQuery) (abci.ResponseQuery, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.app.Query(req), nil
}

func (c *AppConn) BroadcastTx(ctx context.Context, tx []byte) (*fungible.DeliverResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cres := c.app.CheckTx(tx); cres.IsErr() {
		return nil, errors.Wrap(errors.ABCIError(cres.Code, cres.Log), "check tx")
	}

	c.height++
	c.app.BeginBlock(abci.RequestBeginBlock{
		Header: abci.Header{ChainID: c.chainID, Height: c.height},
	})
	dres := c.app.DeliverTx(tx)
	c.app.EndBlock(abci.RequestEndBlock{Height: c.height})
	c.app.Commit()
	return fungible.ParseDeliverOrError(dres)
}
