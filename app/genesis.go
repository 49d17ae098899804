package app

import (
	"encoding/json"
	"io/ioutil"

	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/errors"
)

// Genesis is the part of the tendermint genesis file read by the app.
type Genesis struct {
	ChainID  string          `json:"chain_id"`
	AppState json.RawMessage `json:"app_state"`
}

func loadGenesis(path string) (Genesis, error) {
	var gen Genesis
	raw, err := ioutil.ReadFile(path)
	if err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "read genesis: %s", err)
	}
	if err := json.Unmarshal(raw, &gen); err != nil {
		return gen, errors.Wrapf(errors.ErrInput, "decode genesis: %s", err)
	}
	return gen, nil
}

// LoadGenesis initializes the state from a genesis file on disk instead
// of waiting for InitChain.
func (b *BaseApp) LoadGenesis(path string) error {
	gen, err := loadGenesis(path)
	if err != nil {
		return err
	}
	return b.loadAppState(gen.AppState, gen.ChainID)
}

// loadAppState runs only once in the life of a chain. A restarted node
// already has the chain id in its store.
func (b *BaseApp) loadAppState(raw []byte, chainID string) error {
	if b.chainID != "" {
		return errors.Wrapf(errors.ErrState, "genesis already loaded for chain %s", b.chainID)
	}
	if len(raw) == 0 {
		return errors.Wrap(errors.ErrEmpty, "app_state missing from genesis")
	}
	var opts fungible.Options
	if err := json.Unmarshal(raw, &opts); err != nil {
		return errors.Wrap(errors.ErrInput, err.Error())
	}
	if err := saveChainID(b.state.deliver, chainID); err != nil {
		return err
	}
	b.chainID = chainID
	if b.init == nil {
		return nil
	}
	return b.init.FromGenesis(opts, b.state.deliver)
}

// chainIDKey lives outside of every bucket namespace.
const chainIDKey = "_fg:chainID"

func loadChainID(db fungible.ReadOnlyKVStore) string {
	return string(db.Get([]byte(chainIDKey)))
}

func saveChainID(db fungible.KVStore, chainID string) error {
	if !fungible.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id: %q", chainID)
	}
	if db.Has([]byte(chainIDKey)) {
		return errors.Wrap(errors.ErrImmutable, "chain id")
	}
	db.Set([]byte(chainIDKey), []byte(chainID))
	return nil
}

// ChainInitializers returns an Initializer calling each of inits in
// order. The first error stops the chain.
func ChainInitializers(inits ...fungible.Initializer) fungible.Initializer {
	return initializers(inits)
}

type initializers []fungible.Initializer

func (all initializers) FromGenesis(opts fungible.Options, db fungible.KVStore) error {
	for _, init := range all {
		if err := init.FromGenesis(opts, db); err != nil {
			return err
		}
	}
	return nil
}
