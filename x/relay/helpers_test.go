package relay

import (
	"context"
	"sync"

	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/crypto"
	"github.com/iov-one/fungible/fungibletest"
	"github.com/iov-one/fungible/store"
)

// recordingHandler remembers delivered messages together with the signer
// and source the relay authenticator reported.
type recordingHandler struct {
	msgs    []fungible.Msg
	signers [][]fungible.Condition
	sources []string
	err     error
}

func (h *recordingHandler) Check(ctx fungible.Context, db fungible.KVStore, tx fungible.Tx) (*fungible.CheckResult, error) {
	return &fungible.CheckResult{}, h.err
}

func (h *recordingHandler) Deliver(ctx fungible.Context, db fungible.KVStore, tx fungible.Tx) (*fungible.DeliverResult, error) {
	if h.err != nil {
		return nil, h.err
	}
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	h.msgs = append(h.msgs, msg)
	h.signers = append(h.signers, Authenticate{}.GetConditions(ctx))
	h.sources = append(h.sources, PacketSource(ctx))
	return &fungible.DeliverResult{}, nil
}

// memChain is an in process chain running only the relay extension.
type memChain struct {
	mu      sync.Mutex
	id      string
	key     *crypto.PrivateKey
	db      fungible.CacheableKVStore
	signer  fungible.Condition
	outbox  Outbox
	inbound *recordingHandler
	handler DeliverHandler
}

func newMemChain(id string) *memChain {
	signer := fungibletest.NewCondition()
	inbound := &recordingHandler{}
	return &memChain{
		id:      id,
		key:     crypto.GenPrivKeyEd25519(),
		db:      store.MemStore(),
		signer:  signer,
		outbox:  NewOutbox(&fungibletest.Auth{Signer: signer}),
		inbound: inbound,
		handler: NewDeliverHandler(inbound),
	}
}

func (c *memChain) ctx() fungible.Context {
	return fungible.WithChainID(context.Background(), c.id)
}

// connect registers other as a peer of c.
func (c *memChain) connect(other *memChain) {
	if err := SetPeer(c.db, &Peer{ChainID: other.id, Pubkey: other.key.PublicKey()}); err != nil {
		panic(err)
	}
}

// link connects a and b both ways.
func link(a, b *memChain) {
	a.connect(b)
	b.connect(a)
}

// send sends a test message from c to destination.
func (c *memChain) send(destination, payload string, requireAuth bool) error {
	msg := &fungibletest.Msg{RoutePath: "test/payload", Serialized: []byte(payload)}
	return c.outbox.Send(c.ctx(), c.db, destination, msg, requireAuth)
}

func (c *memChain) ChainID() string { return c.id }

func (c *memChain) Packets(ctx context.Context, destination string, after int64) ([]*Packet, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outbox.Packets(c.db, destination, after, 100)
}

func (c *memChain) OutboxSequence(ctx context.Context, destination string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outbox.Latest(c.db, destination), nil
}

func (c *memChain) InboxSequence(ctx context.Context, source string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return InboxSequence(c.db, source)
}

// Deliver runs the delivery in a transaction.
func (c *memChain) Deliver(ctx context.Context, msg *DeliverPacketMsg) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cache := c.db.CacheWrap()
	if _, err := c.handler.Deliver(c.ctx(), cache, &fungibletest.Tx{Msg: msg}); err != nil {
		cache.Discard()
		return err
	}
	cache.Write()
	return nil
}

var _ Source = (*memChain)(nil)
var _ Destination = (*memChain)(nil)
