package ledger

import "github.com/iov-one/fungible/errors"

// x/ledger reserves 100 ~ 109.
var (
	// ErrIncorrectAuthentication is returned when the caller of a transfer
	// is missing or is not the owner of the debited account.
	ErrIncorrectAuthentication = errors.Register(100, "incorrect authentication")

	// ErrInsufficientBalance is returned when a debit exceeds the account
	// balance.
	ErrInsufficientBalance = errors.Register(101, "insufficient balance")

	// ErrAlreadyInitialized is returned when the ledger of a chain is
	// initialized more than once.
	ErrAlreadyInitialized = errors.Register(102, "ledger already initialized")
)
