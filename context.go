package fungible

import (
	"context"
	"fmt"
	"regexp"

	abci "github.com/tendermint/tendermint/abci/types"
	"github.com/tendermint/tendermint/libs/log"
)

// Context carries the block data and the logger of the running
// transaction. The block values are set once by the application: every
// With function below, except the logger ones, panics when its value is
// already present, so an extension cannot pretend to run on another chain
// or at another height.
type Context = context.Context

type ctxKey int

const (
	keyHeader ctxKey = iota
	keyHeight
	keyChainID
	keyLogger
)

// DefaultLogger is returned by GetLogger when no logger was set.
var DefaultLogger = log.NewNopLogger()

// IsValidChainID accepts 6 to 20 characters of [a-zA-Z0-9_-].
var IsValidChainID = regexp.MustCompile(`^[a-zA-Z0-9_\-]{6,20}$`).MatchString

// setOnce stores val under key or panics when key already holds a value.
func setOnce(ctx Context, key ctxKey, name string, val interface{}) Context {
	if ctx.Value(key) != nil {
		panic(name + " already set")
	}
	return context.WithValue(ctx, key, val)
}

func WithHeader(ctx Context, header abci.Header) Context {
	return setOnce(ctx, keyHeader, "header", header)
}

func GetHeader(ctx Context) (abci.Header, bool) {
	h, ok := ctx.Value(keyHeader).(abci.Header)
	return h, ok
}

func WithHeight(ctx Context, height int64) Context {
	return setOnce(ctx, keyHeight, "height", height)
}

// GetHeight returns false before the first block.
func GetHeight(ctx Context) (int64, bool) {
	h, ok := ctx.Value(keyHeight).(int64)
	return h, ok
}

// WithChainID also panics on an invalid id.
func WithChainID(ctx Context, chainID string) Context {
	if !IsValidChainID(chainID) {
		panic(fmt.Sprintf("invalid chain id %q", chainID))
	}
	return setOnce(ctx, keyChainID, "chain id", chainID)
}

// GetChainID panics when no chain id was set. The application always sets
// one, so a missing id is a wiring mistake.
func GetChainID(ctx Context) string {
	id, ok := ctx.Value(keyChainID).(string)
	if !ok {
		panic("chain id not set")
	}
	return id
}

func WithLogger(ctx Context, logger log.Logger) Context {
	return context.WithValue(ctx, keyLogger, logger)
}

// WithLogInfo adds keyvals to every later log line of ctx.
func WithLogInfo(ctx Context, keyvals ...interface{}) Context {
	return WithLogger(ctx, GetLogger(ctx).With(keyvals...))
}

func GetLogger(ctx Context) log.Logger {
	if l, ok := ctx.Value(keyLogger).(log.Logger); ok {
		return l
	}
	return DefaultLogger
}
