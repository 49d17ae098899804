package errors

import (
	"errors"
	"fmt"
)

const (
	// SuccessABCICode is the code of a response without error.
	SuccessABCICode = 0

	// Errors of no registered kind share this code and, outside of debug
	// mode, this log message, so that internals do not leak to clients.
	internalABCICode uint32 = 1
	internalABCILog         = "internal error"
)

// ABCIInfo returns the code and log message of an ABCI response for
// err. Debug mode logs the full error with its stack trace, including
// errors of no registered kind.
func ABCIInfo(err error, debug bool) (uint32, string) {
	if isNilErr(err) {
		return SuccessABCICode, ""
	}
	code := abciCode(err)
	switch {
	case debug:
		return code, fmt.Sprintf("%+v", err)
	case code == internalABCICode:
		return code, internalABCILog
	default:
		return code, err.Error()
	}
}

// ABCIError rebuilds an error from a response received from a node.
// A registered code gives an error of that kind, so Is works on the
// client side as it does on the node.
func ABCIError(code uint32, log string) error {
	if code == SuccessABCICode {
		return nil
	}
	if kind, ok := registry[code]; ok && code != internalABCICode {
		return Wrap(kind, log)
	}
	return Wrapf(errors.New(internalABCILog), "code %d: %s", code, log)
}

type coder interface {
	ABCICode() uint32
}

// abciCode finds the first code while unwrapping err.
func abciCode(err error) uint32 {
	if isNilErr(err) {
		return SuccessABCICode
	}
	for {
		if c, ok := err.(coder); ok {
			return c.ABCICode()
		}
		c, ok := err.(causer)
		if !ok {
			return internalABCICode
		}
		err = c.Cause()
	}
}
