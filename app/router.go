package app

import (
	"fmt"
	"regexp"

	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/errors"
)

var isPath = regexp.MustCompile(`^[a-zA-Z0-9_/]+$`).MatchString

// Router dispatches a transaction to the handler registered for the
// path of its message.
type Router struct {
	routes map[string]fungible.Handler
}

var _ fungible.Registry = (*Router)(nil)
var _ fungible.Handler = (*Router)(nil)

func NewRouter() *Router {
	return &Router{routes: make(map[string]fungible.Handler)}
}

// Handle registers h for path. It panics on a malformed path or when
// the path is already taken, both being programming errors.
func (r *Router) Handle(path string, h fungible.Handler) {
	if !isPath(path) {
		panic(fmt.Sprintf("invalid path: %s", path))
	}
	if _, ok := r.routes[path]; ok {
		panic(fmt.Sprintf("re-registering route: %s", path))
	}
	r.routes[path] = h
}

// Handler returns the handler for path. Unknown paths get a handler that
// fails with ErrNotFound.
func (r *Router) Handler(path string) fungible.Handler {
	if h, ok := r.routes[path]; ok {
		return h
	}
	return missingRoute(path)
}

func (r *Router) route(tx fungible.Tx) (fungible.Handler, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, errors.Wrap(err, "cannot load msg")
	}
	return r.Handler(msg.Path()), nil
}

func (r *Router) Check(ctx fungible.Context, db fungible.KVStore, tx fungible.Tx) (*fungible.CheckResult, error) {
	h, err := r.route(tx)
	if err != nil {
		return nil, err
	}
	return h.Check(ctx, db, tx)
}

func (r *Router) Deliver(ctx fungible.Context, db fungible.KVStore, tx fungible.Tx) (*fungible.DeliverResult, error) {
	h, err := r.route(tx)
	if err != nil {
		return nil, err
	}
	return h.Deliver(ctx, db, tx)
}

type missingRoute string

func (path missingRoute) Check(fungible.Context, fungible.KVStore, fungible.Tx) (*fungible.CheckResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}

func (path missingRoute) Deliver(fungible.Context, fungible.KVStore, fungible.Tx) (*fungible.DeliverResult, error) {
	return nil, errors.Wrapf(errors.ErrNotFound, "no handler for message path %q", string(path))
}
