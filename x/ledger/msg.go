package ledger

import (
	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/amount"
	"github.com/iov-one/fungible/errors"
)

const (
	pathTransferMsg = "ledger/transfer"
	pathCreditMsg   = "ledger/credit"
)

var _ fungible.Msg = (*TransferMsg)(nil)

// NewTransferMsg builds a transfer of amount from owner to the target
// account on the target chain. The result is not validated.
func NewTransferMsg(owner fungible.Address, amt amount.Amount, chainID string, target fungible.Address) *TransferMsg {
	return &TransferMsg{
		Owner:  owner,
		Amount: &amt,
		Target: &ChainAccount{
			ChainID: chainID,
			Owner:   target,
		},
	}
}

// Path returns the routing path for this message.
func (TransferMsg) Path() string {
	return pathTransferMsg
}

// Validate makes sure that this is sensible.
func (m *TransferMsg) Validate() error {
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if err := validateAmount(m.Amount); err != nil {
		return err
	}
	if m.Target == nil {
		return errors.Wrap(errors.ErrEmpty, "target")
	}
	return m.Target.Validate()
}

// Validate makes sure the account points to a well formed chain and owner.
func (a *ChainAccount) Validate() error {
	if !fungible.IsValidChainID(a.ChainID) {
		return errors.Wrapf(errors.ErrInput, "target chain id %q", a.ChainID)
	}
	if err := a.Owner.Validate(); err != nil {
		return errors.Wrap(err, "target owner")
	}
	return nil
}

var _ fungible.Msg = (*CreditMsg)(nil)

// Path returns the routing path for this message.
func (CreditMsg) Path() string {
	return pathCreditMsg
}

// Validate makes sure that this is sensible.
func (m *CreditMsg) Validate() error {
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return validateAmount(m.Amount)
}

func validateAmount(a *amount.Amount) error {
	if a == nil {
		return errors.Wrap(errors.ErrEmpty, "amount")
	}
	if err := a.Validate(); err != nil {
		return errors.Wrap(err, "amount")
	}
	if !a.IsPositive() {
		return errors.Wrap(errors.ErrAmount, "must be positive")
	}
	return nil
}
