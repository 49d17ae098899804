/*
Package app assembles the fungibled node: the decorator stack, the
message routers and the queries, on top of an iavl store.
*/
package app

import (
	"path/filepath"
	"strings"

	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/app"
	"github.com/iov-one/fungible/errors"
	"github.com/iov-one/fungible/orm"
	"github.com/iov-one/fungible/store/iavl"
	"github.com/iov-one/fungible/x"
	"github.com/iov-one/fungible/x/ledger"
	"github.com/iov-one/fungible/x/relay"
	"github.com/iov-one/fungible/x/sigs"
	"github.com/iov-one/fungible/x/utils"
)

// Authenticator trusts the signatures verified by the sigs decorator.
func Authenticator() x.Authenticator {
	return sigs.Authenticate{}
}

// Chain is the decorator stack every transaction passes, outermost
// first.
//
// Signatures are optional because relayers submit packets on their own
// account: a packet carries the signature of its origin, verified by
// the relay handler. The deliver savepoint sits below the signature
// check, so a failed transfer still consumes the sequence of its signer.
func Chain() app.Decorators {
	return app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewActionTagger(),
		utils.NewSavepoint().OnCheck(),
		sigs.NewDecorator().AllowMissingSigs(),
		utils.NewSavepoint().OnDeliver(),
	)
}

// Router serves user transfers and relayed packets. The messages inside
// a packet go through their own router, the only place a credit is
// accepted.
func Router(auth x.Authenticator) *app.Router {
	accounts := ledger.NewLedger()

	inbound := app.NewRouter()
	ledger.RegisterInboundRoutes(inbound, accounts)

	r := app.NewRouter()
	ledger.RegisterRoutes(r, auth, accounts, relay.NewOutbox(auth))
	relay.RegisterRoutes(r, app.ChainDecorators(utils.NewActionTagger()).WithHandler(inbound))
	return r
}

// QueryRouter serves "/accounts", "/outbox", "/inbox", "/peers", "/auth"
// and the raw store under "/".
func QueryRouter() fungible.QueryRouter {
	qr := fungible.NewQueryRouter()
	qr.RegisterAll(
		ledger.RegisterQuery,
		relay.RegisterQuery,
		relay.NewOutbox(nil).RegisterQuery,
		sigs.RegisterQuery,
		orm.RegisterQuery,
	)
	return qr
}

// Stack is the full handler of the node.
func Stack() fungible.Handler {
	return Chain().WithHandler(Router(Authenticator()))
}

// Application opens the store at dbPath and returns the node. An empty
// dbPath keeps the state in memory.
func Application(name string, h fungible.Handler, decoder fungible.TxDecoder, dbPath string, debug bool) (*app.BaseApp, error) {
	kv, err := CommitKVStore(dbPath)
	if err != nil {
		return nil, err
	}
	return app.NewBaseApp(name, kv, QueryRouter(), decoder, h, debug)
}

// CommitKVStore opens the iavl store named by dbPath. Tendermint passes
// paths ending in ".db", which is the suffix leveldb adds itself, so the
// extension is dropped.
func CommitKVStore(dbPath string) (fungible.CommitKVStore, error) {
	if dbPath == "" {
		return iavl.NewCommitStore("", "fungible"), nil
	}
	abs, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrInput, "database path %q", dbPath)
	}
	abs = strings.TrimSuffix(abs, filepath.Ext(abs))
	return iavl.NewCommitStore(filepath.Dir(abs), filepath.Base(abs)), nil
}
