package utils

import (
	"github.com/iov-one/fungible"
	"github.com/tendermint/tendermint/libs/common"
)

// ActionKey is the tag holding the message path of a delivered
// transaction. Clients search for transfers with action='ledger/transfer'.
const ActionKey = "action"

// ActionTagger tags successful deliveries with their message path. The
// inbound relay router is wrapped too, so credits from another chain can
// be searched the same way.
type ActionTagger struct{}

var _ fungible.Decorator = ActionTagger{}

func NewActionTagger() ActionTagger {
	return ActionTagger{}
}

func (ActionTagger) Check(ctx fungible.Context, db fungible.KVStore, tx fungible.Tx, next fungible.Checker) (*fungible.CheckResult, error) {
	return next.Check(ctx, db, tx)
}

// Deliver reads the message before calling next, so an unreadable
// message fails without running the handler.
func (ActionTagger) Deliver(ctx fungible.Context, db fungible.KVStore, tx fungible.Tx, next fungible.Deliverer) (*fungible.DeliverResult, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	res, err := next.Deliver(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	res.Tags = append(res.Tags, common.KVPair{Key: []byte(ActionKey), Value: []byte(msg.Path())})
	return res, nil
}
