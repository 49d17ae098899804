package ledger

import (
	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/errors"
	"github.com/iov-one/fungible/x"
)

// Sender accepts messages for delivery to another chain. Once Send
// returns, the message must eventually be delivered to the destination
// exactly once and in the order of sending.
type Sender interface {
	Send(ctx fungible.Context, db fungible.KVStore, destination string, msg fungible.Msg, requireAuth bool) error
}

// destinationChecker is implemented by senders that know up front which
// chains they can deliver to.
type destinationChecker interface {
	CanSend(db fungible.ReadOnlyKVStore, destination string) error
}

// RegisterRoutes registers handlers of user submitted messages.
func RegisterRoutes(r fungible.Registry, auth x.Authenticator, ledger Ledger, sender Sender) {
	r.Handle(pathTransferMsg, NewTransferHandler(auth, ledger, sender))
}

// RegisterInboundRoutes registers handlers of messages that arrive from
// other chains. The registry must be reachable only by the delivery layer.
func RegisterInboundRoutes(r fungible.Registry, ledger Ledger) {
	r.Handle(pathCreditMsg, NewCreditHandler(ledger))
}

// RegisterQuery will register the accounts bucket as "/accounts"
func RegisterQuery(qr fungible.QueryRouter) {
	NewBucket().Register("accounts", qr)
}

// TransferHandler debits the owner and routes the credit either to the
// local ledger or to another chain.
type TransferHandler struct {
	auth   x.Authenticator
	ledger Ledger
	sender Sender
}

var _ fungible.Handler = TransferHandler{}

// NewTransferHandler creates a handler for TransferMsg
func NewTransferHandler(auth x.Authenticator, ledger Ledger, sender Sender) TransferHandler {
	return TransferHandler{
		auth:   auth,
		ledger: ledger,
		sender: sender,
	}
}

// Check verifies the message is well formed, authenticated and covered by
// the owner balance. Remote targets must be reachable through the sender,
// if the sender can tell. Nothing is written.
func (h TransferHandler) Check(ctx fungible.Context, db fungible.KVStore, tx fungible.Tx) (*fungible.CheckResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	balance, err := h.ledger.Balance(db, msg.Owner)
	if err != nil {
		return nil, err
	}
	if balance.Compare(*msg.Amount) < 0 {
		return nil, errors.Wrapf(ErrInsufficientBalance, "%s has %s", msg.Owner, balance)
	}
	if dest := msg.Target.ChainID; dest != fungible.GetChainID(ctx) {
		if c, ok := h.sender.(destinationChecker); ok {
			if err := c.CanSend(db, dest); err != nil {
				return nil, errors.Wrap(err, "cannot send credit")
			}
		}
	}
	return &fungible.CheckResult{}, nil
}

// Deliver moves the tokens. Any returned error means the transaction must
// be discarded as a whole.
func (h TransferHandler) Deliver(ctx fungible.Context, db fungible.KVStore, tx fungible.Tx) (*fungible.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.ledger.Debit(ctx, db, msg.Owner, *msg.Amount); err != nil {
		return nil, err
	}

	target := msg.Target
	if target.ChainID == fungible.GetChainID(ctx) {
		if err := h.ledger.Credit(ctx, db, target.Owner, *msg.Amount); err != nil {
			return nil, err
		}
		return &fungible.DeliverResult{}, nil
	}

	credit := &CreditMsg{Owner: target.Owner, Amount: msg.Amount}
	if err := h.sender.Send(ctx, db, target.ChainID, credit, true); err != nil {
		return nil, errors.Wrap(err, "cannot send credit")
	}
	return &fungible.DeliverResult{Log: "credit sent to " + target.ChainID}, nil
}

func (h TransferHandler) validate(ctx fungible.Context, tx fungible.Tx) (*TransferMsg, error) {
	var msg TransferMsg
	if err := fungible.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := Authenticate(ctx, h.auth, msg.Owner); err != nil {
		return nil, err
	}
	return &msg, nil
}

// CreditHandler applies credits sent by a transfer on another chain.
type CreditHandler struct {
	ledger Ledger
}

var _ fungible.Handler = CreditHandler{}

// NewCreditHandler creates a handler for CreditMsg
func NewCreditHandler(ledger Ledger) CreditHandler {
	return CreditHandler{ledger: ledger}
}

func (h CreditHandler) Check(ctx fungible.Context, db fungible.KVStore, tx fungible.Tx) (*fungible.CheckResult, error) {
	var msg CreditMsg
	if err := fungible.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	return &fungible.CheckResult{}, nil
}

func (h CreditHandler) Deliver(ctx fungible.Context, db fungible.KVStore, tx fungible.Tx) (*fungible.DeliverResult, error) {
	var msg CreditMsg
	if err := fungible.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if err := h.ledger.Credit(ctx, db, msg.Owner, *msg.Amount); err != nil {
		return nil, err
	}
	return &fungible.DeliverResult{}, nil
}
