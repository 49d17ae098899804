package utils

import (
	"time"

	"github.com/iov-one/fungible"
)

// Logging writes one line per transaction with its duration in
// microseconds. Failures are logged as errors, deliveries as info and
// checks as debug.
type Logging struct{}

var _ fungible.Decorator = Logging{}

func NewLogging() Logging {
	return Logging{}
}

func (Logging) Check(ctx fungible.Context, db fungible.KVStore, tx fungible.Tx, next fungible.Checker) (*fungible.CheckResult, error) {
	start := time.Now()
	res, err := next.Check(ctx, db, tx)
	var msg string
	if res != nil {
		msg = res.Log
	}
	logResult(ctx, start, msg, err, true)
	return res, err
}

func (Logging) Deliver(ctx fungible.Context, db fungible.KVStore, tx fungible.Tx, next fungible.Deliverer) (*fungible.DeliverResult, error) {
	start := time.Now()
	res, err := next.Deliver(ctx, db, tx)
	var msg string
	if res != nil {
		msg = res.Log
	}
	logResult(ctx, start, msg, err, false)
	return res, err
}

func logResult(ctx fungible.Context, start time.Time, msg string, err error, check bool) {
	logger := fungible.GetLogger(ctx).With("duration", time.Since(start)/time.Microsecond)
	if err != nil {
		logger.Error(msg, "err", err)
		return
	}
	if check {
		logger.Debug(msg)
	} else {
		logger.Info(msg)
	}
}
