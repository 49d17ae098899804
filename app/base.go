package app

import (
	"context"
	"fmt"

	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/errors"
	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// BaseApp is an abci.Application that decodes transactions and passes
// them to a handler, keeping the state in a CommitKVStore.
//
// ABCI steps that carry no user input (InitChain, BeginBlock, Commit)
// have no way to report an error, so failures there panic and stop the
// node.
type BaseApp struct {
	name    string
	state   *state
	decoder fungible.TxDecoder
	handler fungible.Handler
	queries fungible.QueryRouter
	init    fungible.Initializer
	logger  log.Logger
	debug   bool

	chainID string
	// block is the context of the block being processed.
	block fungible.Context
}

var _ abci.Application = (*BaseApp)(nil)

// NewBaseApp loads the latest committed state of kv. A chain id saved by
// a previous genesis is restored.
func NewBaseApp(
	name string,
	kv fungible.CommitKVStore,
	queries fungible.QueryRouter,
	decoder fungible.TxDecoder,
	handler fungible.Handler,
	debug bool,
) (*BaseApp, error) {
	st, err := loadState(kv)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, err.Error())
	}
	b := &BaseApp{
		name:    name,
		state:   st,
		decoder: decoder,
		handler: handler,
		queries: queries,
		logger:  log.NewNopLogger(),
		debug:   debug,
		chainID: loadChainID(st.deliver),
	}
	b.block = fungible.WithHeight(b.baseContext(), st.last().Version)
	return b, nil
}

// WithInit sets the initializer called with the genesis app state.
func (b *BaseApp) WithInit(init fungible.Initializer) *BaseApp {
	b.init = init
	return b
}

// WithLogger sets the logger of the app. Handlers receive it through
// the context.
func (b *BaseApp) WithLogger(logger log.Logger) *BaseApp {
	b.logger = logger
	return b
}

// ChainID returns the chain id set at genesis, or an empty string before
// that.
func (b *BaseApp) ChainID() string {
	return b.chainID
}

func (b *BaseApp) baseContext() fungible.Context {
	ctx := context.Background()
	if b.chainID != "" {
		ctx = fungible.WithChainID(ctx, b.chainID)
	}
	return ctx
}

// DeliverStore is the store transactions of the current block write to.
func (b *BaseApp) DeliverStore() fungible.CacheableKVStore {
	return b.state.deliver
}

// CheckStore is the store used to validate transactions for the mempool.
func (b *BaseApp) CheckStore() fungible.CacheableKVStore {
	return b.state.check
}

func (b *BaseApp) Info(abci.RequestInfo) abci.ResponseInfo {
	id := b.state.last()
	b.logger.Info("Info synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseInfo{
		Data:             b.name,
		LastBlockHeight:  id.Version,
		LastBlockAppHash: id.Hash,
	}
}

func (b *BaseApp) SetOption(abci.RequestSetOption) abci.ResponseSetOption {
	return abci.ResponseSetOption{Log: "not supported"}
}

// InitChain stores the chain id and hands the app_state of the genesis
// file to the initializer.
func (b *BaseApp) InitChain(req abci.RequestInitChain) abci.ResponseInitChain {
	if err := b.loadAppState(req.AppStateBytes, req.ChainId); err != nil {
		panic(err)
	}
	return abci.ResponseInitChain{}
}

func (b *BaseApp) BeginBlock(req abci.RequestBeginBlock) abci.ResponseBeginBlock {
	ctx := fungible.WithHeader(b.baseContext(), req.Header)
	b.block = fungible.WithHeight(ctx, req.Header.GetHeight())
	return abci.ResponseBeginBlock{}
}

func (b *BaseApp) EndBlock(abci.RequestEndBlock) abci.ResponseEndBlock {
	return abci.ResponseEndBlock{}
}

func (b *BaseApp) Commit() abci.ResponseCommit {
	id := b.state.commit()
	b.logger.Debug("Commit synced", "height", id.Version, "hash", fmt.Sprintf("%X", id.Hash))
	return abci.ResponseCommit{Data: id.Hash}
}

func (b *BaseApp) CheckTx(raw []byte) abci.ResponseCheckTx {
	tx, err := b.decode(raw)
	if err != nil {
		return fungible.CheckTxError(err, b.debug)
	}
	ctx := fungible.WithLogInfo(fungible.WithLogger(b.block, b.logger), "call", "check_tx", "path", fungible.GetPath(tx))
	res, err := b.handler.Check(ctx, b.state.check, tx)
	return fungible.CheckOrError(res, err, b.debug)
}

func (b *BaseApp) DeliverTx(raw []byte) abci.ResponseDeliverTx {
	tx, err := b.decode(raw)
	if err != nil {
		return fungible.DeliverTxError(err, b.debug)
	}
	ctx := fungible.WithLogInfo(fungible.WithLogger(b.block, b.logger), "call", "deliver_tx", "path", fungible.GetPath(tx))
	res, err := b.handler.Deliver(ctx, b.state.deliver, tx)
	return fungible.DeliverOrError(res, err, b.debug)
}

// decode never panics, a broken decoder is reported as an error.
func (b *BaseApp) decode(raw []byte) (tx fungible.Tx, err error) {
	defer errors.Recover(&err)
	return b.decoder(raw)
}
