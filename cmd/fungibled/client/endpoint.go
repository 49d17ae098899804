package client

import (
	"context"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/amount"
	"github.com/iov-one/fungible/app"
	fungibled "github.com/iov-one/fungible/cmd/fungibled/app"
	"github.com/iov-one/fungible/crypto"
	"github.com/iov-one/fungible/errors"
	"github.com/iov-one/fungible/x/ledger"
	"github.com/iov-one/fungible/x/relay"
	"github.com/iov-one/fungible/x/sigs"
	abci "github.com/tendermint/tendermint/abci/types"
)

// maxPackets limits the number of packets returned by a single Packets
// call.
const maxPackets = 100

// Endpoint is a single chain as seen by a relayer or a wallet.
type Endpoint struct {
	chainID string
	conn    Conn
	outbox  relay.Outbox
	ledger  ledger.BaseLedger
}

var _ relay.Source = (*Endpoint)(nil)
var _ relay.Destination = (*Endpoint)(nil)

// NewEndpoint returns an endpoint of the chain with given ID, reachable
// over conn.
func NewEndpoint(chainID string, conn Conn) *Endpoint {
	return &Endpoint{
		chainID: chainID,
		conn:    conn,
		outbox:  relay.NewOutbox(nil),
		ledger:  ledger.NewLedger(),
	}
}

// ChainID returns the ID of the chain.
func (e *Endpoint) ChainID() string {
	return e.chainID
}

// Packets returns packets to destination with a sequence greater than
// after, in order of sending.
func (e *Endpoint) Packets(ctx context.Context, destination string, after int64) ([]*relay.Packet, error) {
	var packets []*relay.Packet
	err := e.read(ctx, func(db fungible.ReadOnlyKVStore) error {
		var err error
		packets, err = e.outbox.Packets(db, destination, after, maxPackets)
		return err
	})
	return packets, err
}

// OutboxSequence returns the sequence of the last packet sent to
// destination.
func (e *Endpoint) OutboxSequence(ctx context.Context, destination string) (int64, error) {
	var seq int64
	err := e.read(ctx, func(db fungible.ReadOnlyKVStore) error {
		seq = e.outbox.Latest(db, destination)
		return nil
	})
	return seq, err
}

// InboxSequence returns the sequence of the last packet delivered from
// source.
func (e *Endpoint) InboxSequence(ctx context.Context, source string) (int64, error) {
	var seq int64
	err := e.read(ctx, func(db fungible.ReadOnlyKVStore) error {
		var err error
		seq, err = relay.InboxSequence(db, source)
		return err
	})
	return seq, err
}

// Deliver submits the packet in an unsigned transaction.
func (e *Endpoint) Deliver(ctx context.Context, msg *relay.DeliverPacketMsg) error {
	tx, err := fungibled.NewTx(msg)
	if err != nil {
		return err
	}
	_, err = e.broadcast(ctx, tx)
	return err
}

// Balance returns the balance of the owner account.
func (e *Endpoint) Balance(ctx context.Context, owner fungible.Address) (amount.Amount, error) {
	var balance amount.Amount
	err := e.read(ctx, func(db fungible.ReadOnlyKVStore) error {
		var err error
		balance, err = e.ledger.Balance(db, owner)
		return err
	})
	return balance, err
}

// Nonce returns the sequence the next signature of signer must use.
func (e *Endpoint) Nonce(ctx context.Context, signer fungible.Address) (int64, error) {
	var nonce int64
	err := e.read(ctx, func(db fungible.ReadOnlyKVStore) error {
		var err error
		nonce, err = sigs.NextNonce(db, signer)
		return err
	})
	return nonce, err
}

// Transfer signs a transfer from the key owner account and submits it.
// The target may live on this or on any peer chain.
func (e *Endpoint) Transfer(ctx context.Context, key crypto.Signer, amt amount.Amount, chainID string, target fungible.Address) (*fungible.DeliverResult, error) {
	owner := key.PublicKey().Address()
	tx, err := fungibled.NewTx(ledger.NewTransferMsg(owner, amt, chainID, target))
	if err != nil {
		return nil, err
	}
	nonce, err := e.Nonce(ctx, owner)
	if err != nil {
		return nil, errors.Wrap(err, "nonce")
	}
	sig, err := sigs.SignTx(key, tx, e.chainID, nonce)
	if err != nil {
		return nil, err
	}
	tx.Signatures = append(tx.Signatures, sig)
	return e.broadcast(ctx, tx)
}

func (e *Endpoint) broadcast(ctx context.Context, tx *fungibled.Tx) (*fungible.DeliverResult, error) {
	bz, err := proto.Marshal(tx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return e.conn.BroadcastTx(ctx, bz)
}

// read runs fn against the remote state. Transport failures are
// returned as the error of read.
func (e *Endpoint) read(ctx context.Context, fn func(fungible.ReadOnlyKVStore) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			qerr, ok := r.(queryErr)
			if !ok {
				panic(r)
			}
			err = qerr.err
		}
	}()
	return fn(&remoteStore{ctx: ctx, conn: e.conn})
}

// queryErr carries a failed remote read out of the store interface,
// which has no error returns.
type queryErr struct {
	err error
}

// remoteStore reads single keys through the raw "/" query path.
type remoteStore struct {
	ctx  context.Context
	conn Conn
}

var _ fungible.ReadOnlyKVStore = (*remoteStore)(nil)

func (s *remoteStore) Get(key []byte) []byte {
	res, err := s.conn.Query(s.ctx, abci.RequestQuery{Path: "/", Data: key})
	if err != nil {
		panic(queryErr{err: err})
	}
	if err := errors.ABCIError(res.Code, res.Log); err != nil {
		panic(queryErr{err: err})
	}
	var values app.ResultSet
	if err := proto.Unmarshal(res.Value, &values); err != nil {
		panic(queryErr{err: errors.Wrap(errors.ErrInput, err.Error())})
	}
	if len(values.Results) == 0 {
		return nil
	}
	return values.Results[0]
}

func (s *remoteStore) Has(key []byte) bool {
	return s.Get(key) != nil
}

func (s *remoteStore) Iterator(start, end []byte) fungible.Iterator {
	panic(queryErr{err: errors.Wrap(errors.ErrHuman, "remote iteration not supported")})
}

func (s *remoteStore) ReverseIterator(start, end []byte) fungible.Iterator {
	panic(queryErr{err: errors.Wrap(errors.ErrHuman, "remote iteration not supported")})
}
