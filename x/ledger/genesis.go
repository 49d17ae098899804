package ledger

import (
	"context"

	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/amount"
	"github.com/iov-one/fungible/errors"
)

// Genesis is the content of the "ledger" genesis section.
type Genesis struct {
	// Owner receives Amount when the chain starts. Without an owner the
	// ledger starts empty.
	Owner  fungible.Address `json:"owner"`
	Amount amount.Amount    `json:"amount"`
}

// Initializer fulfils the Initializer interface to load data from the
// genesis file
type Initializer struct {
	Ledger Ledger
}

var _ fungible.Initializer = (*Initializer)(nil)

// FromGenesis initializes the ledger with the designated account.
func (i *Initializer) FromGenesis(opts fungible.Options, db fungible.KVStore) error {
	var gen Genesis
	if err := opts.ReadOptions("ledger", &gen); err != nil {
		return err
	}
	if len(gen.Owner) == 0 {
		return nil
	}
	if err := gen.Amount.Validate(); err != nil {
		return errors.Wrap(err, "genesis amount")
	}
	ledger := i.Ledger
	if ledger == nil {
		ledger = NewLedger()
	}
	return ledger.Initialize(context.Background(), db, gen.Owner, gen.Amount)
}
