package fungible

import (
	"fmt"
	"strings"
)

// Query modes, given after a "?" in the query path.
const (
	KeyQueryMod    = ""
	PrefixQueryMod = "prefix"
)

// Model is one key and its value in a query result.
type Model struct {
	Key   []byte
	Value []byte
}

func Pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// QueryHandler answers the queries of one path. An unknown mod is an
// ErrInput, a missing key an empty result.
type QueryHandler interface {
	Query(db ReadOnlyKVStore, mod string, data []byte) ([]Model, error)
}

// QueryRegister lets an extension add its paths.
type QueryRegister func(QueryRouter)

// QueryRouter maps exact paths to handlers.
type QueryRouter struct {
	routes map[string]QueryHandler
}

func NewQueryRouter() QueryRouter {
	return QueryRouter{routes: map[string]QueryHandler{}}
}

func (r QueryRouter) RegisterAll(registers ...QueryRegister) {
	for _, register := range registers {
		register(r)
	}
}

// Register panics when path is taken.
func (r QueryRouter) Register(path string, h QueryHandler) {
	if _, taken := r.routes[path]; taken {
		panic(fmt.Sprintf("query path %q registered twice", path))
	}
	r.routes[path] = h
}

// Handler returns nil for an unknown path.
func (r QueryRouter) Handler(path string) QueryHandler {
	return r.routes[path]
}

// SplitQueryPath splits "/accounts?prefix" into "/accounts" and "prefix".
func SplitQueryPath(path string) (string, string) {
	i := strings.IndexByte(path, '?')
	if i < 0 {
		return path, KeyQueryMod
	}
	return path[:i], path[i+1:]
}
