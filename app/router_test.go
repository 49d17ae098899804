package app

import (
	"context"
	"testing"

	"github.com/iov-one/fungible/errors"
	"github.com/iov-one/fungible/fungibletest"
	"github.com/iov-one/fungible/fungibletest/assert"
)

func TestRouterSuccess(t *testing.T) {
	r := NewRouter()
	msg := &fungibletest.Msg{RoutePath: "ledger/transfer"}
	handler := &fungibletest.Handler{}
	r.Handle(msg.Path(), handler)

	tx := &fungibletest.Tx{Msg: msg}
	ctx := context.Background()

	_, err := r.Check(ctx, nil, tx)
	assert.Nil(t, err)
	_, err = r.Deliver(ctx, nil, tx)
	assert.Nil(t, err)
	assert.Equal(t, 2, handler.CallCount())
}

func TestRouterNoHandler(t *testing.T) {
	r := NewRouter()
	tx := &fungibletest.Tx{Msg: &fungibletest.Msg{RoutePath: "ledger/unknown"}}
	ctx := context.Background()

	_, err := r.Check(ctx, nil, tx)
	assert.IsErr(t, errors.ErrNotFound, err)
	_, err = r.Deliver(ctx, nil, tx)
	assert.IsErr(t, errors.ErrNotFound, err)
}

func TestRouterBrokenMsg(t *testing.T) {
	r := NewRouter()
	tx := &fungibletest.Tx{Err: errors.ErrMsg}
	_, err := r.Deliver(context.Background(), nil, tx)
	assert.IsErr(t, errors.ErrMsg, err)
}

func TestRegisteringInvalidPath(t *testing.T) {
	r := NewRouter()
	h := &fungibletest.Handler{}
	assert.Panics(t, func() { r.Handle("l:7", h) })

	r.Handle("ledger/credit", h)
	assert.Panics(t, func() { r.Handle("ledger/credit", h) })
}
