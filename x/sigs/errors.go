package sigs

import "github.com/iov-one/fungible/errors"

// x/sigs reserves 120 ~ 129.
var (
	// ErrInvalidSequence is returned when a signature sequence does not
	// match the next expected value of the signer.
	ErrInvalidSequence = errors.Register(120, "invalid sequence number")
)

// IsInvalidSignatureErr returns true if the error was created because of a
// missing or invalid signature.
var IsInvalidSignatureErr = errors.ErrUnauthorized.Is
