package fungible

import (
	"encoding/json"

	"github.com/iov-one/fungible/errors"
)

// Handler executes the messages of one route. Check only validates, with
// writes that are thrown away at the next commit. Deliver changes the
// state.
type Handler interface {
	Checker
	Deliverer
}

type Checker interface {
	Check(ctx Context, store KVStore, tx Tx) (*CheckResult, error)
}

type Deliverer interface {
	Deliver(ctx Context, store KVStore, tx Tx) (*DeliverResult, error)
}

// Decorator runs around a Handler, for example to verify signatures, and
// decides whether to call next.
type Decorator interface {
	Check(ctx Context, store KVStore, tx Tx, next Checker) (*CheckResult, error)
	Deliver(ctx Context, store KVStore, tx Tx, next Deliverer) (*DeliverResult, error)
}

// Registry binds message paths to handlers.
type Registry interface {
	Handle(path string, h Handler)
}

// Options is the app_state of a genesis file, one JSON document per
// extension.
type Options map[string]json.RawMessage

// ReadOptions decodes the document of key into obj. A missing key leaves
// obj untouched.
func (o Options) ReadOptions(key string, obj interface{}) error {
	raw, ok := o[key]
	if !ok || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, obj); err != nil {
		return errors.Wrapf(errors.ErrInput, "genesis %q: %s", key, err)
	}
	return nil
}

// Initializer writes the genesis state of an extension.
type Initializer interface {
	FromGenesis(Options, KVStore) error
}
