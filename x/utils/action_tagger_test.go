package utils_test

import (
	"context"
	"testing"

	"github.com/tendermint/tendermint/libs/common"

	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/app"
	"github.com/iov-one/fungible/errors"
	"github.com/iov-one/fungible/fungibletest"
	"github.com/iov-one/fungible/fungibletest/assert"
	"github.com/iov-one/fungible/store"
	"github.com/iov-one/fungible/x/utils"
)

func action(path string) common.KVPair {
	return common.KVPair{Key: []byte(utils.ActionKey), Value: []byte(path)}
}

func TestActionTagger(t *testing.T) {
	transfer := &fungibletest.Tx{Msg: &fungibletest.Msg{RoutePath: "ledger/transfer"}}

	cases := map[string]struct {
		handler  *fungibletest.Handler
		tx       fungible.Tx
		wantErr  *errors.Error
		wantTags []common.KVPair
		wantRuns int
	}{
		"tags the path": {
			handler:  &fungibletest.Handler{},
			tx:       transfer,
			wantTags: []common.KVPair{action("ledger/transfer")},
			wantRuns: 1,
		},
		"keeps earlier tags": {
			handler: &fungibletest.Handler{
				DeliverResult: fungible.DeliverResult{Tags: []common.KVPair{action("relay/deliver")}},
			},
			tx:       &fungibletest.Tx{Msg: &fungibletest.Msg{RoutePath: "ledger/credit"}},
			wantTags: []common.KVPair{action("relay/deliver"), action("ledger/credit")},
			wantRuns: 1,
		},
		"handler failure": {
			handler:  &fungibletest.Handler{DeliverErr: errors.ErrInsufficientAmount},
			tx:       transfer,
			wantErr:  errors.ErrInsufficientAmount,
			wantRuns: 1,
		},
		"unreadable message stops before the handler": {
			handler: &fungibletest.Handler{},
			tx:      &fungibletest.Tx{Err: errors.ErrMsg},
			wantErr: errors.ErrMsg,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			stack := app.ChainDecorators(utils.NewActionTagger()).WithHandler(tc.handler)
			res, err := stack.Deliver(context.Background(), store.MemStore(), tc.tx)
			assert.IsErr(t, tc.wantErr, err)
			assert.Equal(t, tc.wantRuns, tc.handler.DeliverCallCount())
			if tc.wantErr == nil {
				assert.Equal(t, tc.wantTags, res.Tags)
			}
		})
	}
}

func TestActionTaggerIgnoresCheck(t *testing.T) {
	h := &fungibletest.Handler{CheckResult: fungible.CheckResult{Log: "ok"}}
	tx := &fungibletest.Tx{Err: errors.ErrMsg}
	res, err := utils.NewActionTagger().Check(context.Background(), store.MemStore(), tx, h)
	assert.Nil(t, err)
	assert.Equal(t, "ok", res.Log)
}
