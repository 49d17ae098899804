package relay

import (
	"context"
	"time"

	"github.com/iov-one/fungible/crypto"
	"github.com/iov-one/fungible/errors"
	"github.com/tendermint/tendermint/libs/log"
)

// Source provides packets sent by a chain.
type Source interface {
	ChainID() string
	// Packets returns packets to destination with a sequence greater
	// than after, in order of sending.
	Packets(ctx context.Context, destination string, after int64) ([]*Packet, error)
	// OutboxSequence returns the sequence of the last packet sent to
	// destination.
	OutboxSequence(ctx context.Context, destination string) (int64, error)
}

// Destination accepts packets for a chain.
type Destination interface {
	ChainID() string
	// InboxSequence returns the sequence of the last packet delivered
	// from source.
	InboxSequence(ctx context.Context, source string) (int64, error)
	// Deliver submits the packet and returns once it is processed.
	Deliver(ctx context.Context, msg *DeliverPacketMsg) error
}

// Relayer moves packets from one chain to another. The key must be the
// one registered for the source chain at the destination.
type Relayer struct {
	src    Source
	dst    Destination
	key    crypto.Signer
	logger log.Logger
}

// NewRelayer returns a relayer for a single direction.
func NewRelayer(src Source, dst Destination, key crypto.Signer, logger log.Logger) *Relayer {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Relayer{
		src: src,
		dst: dst,
		key: key,
		logger: logger.With(
			"source", src.ChainID(),
			"destination", dst.ChainID()),
	}
}

// RelayOnce delivers all pending packets, in order. It stops at the first
// failure. Returned is the number of delivered packets.
func (r *Relayer) RelayOnce(ctx context.Context) (int, error) {
	start := time.Now()
	defer func() { relayDuration.Observe(time.Since(start).Seconds()) }()

	src, dst := r.src.ChainID(), r.dst.ChainID()

	last, err := r.dst.InboxSequence(ctx, src)
	if err != nil {
		return 0, errors.Wrap(err, "inbox sequence")
	}
	if latest, err := r.src.OutboxSequence(ctx, dst); err == nil {
		pendingPackets.WithLabelValues(src, dst).Set(float64(latest - last))
	}
	packets, err := r.src.Packets(ctx, dst, last)
	if err != nil {
		return 0, errors.Wrap(err, "outbox packets")
	}

	var n int
	for _, p := range packets {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		msg, err := Sign(r.key, p)
		if err != nil {
			return n, err
		}
		if err := r.dst.Deliver(ctx, msg); err != nil {
			failedPackets.WithLabelValues(src, dst).Inc()
			return n, errors.Wrapf(err, "packet %d", p.Sequence)
		}
		relayedPackets.WithLabelValues(src, dst).Inc()
		pendingPackets.WithLabelValues(src, dst).Dec()
		r.logger.Debug("relayed", "sequence", p.Sequence)
		n++
	}
	return n, nil
}

// Run relays packets every interval until the context is cancelled.
// Failed rounds are logged and retried on the next tick.
func (r *Relayer) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		n, err := r.RelayOnce(ctx)
		if err != nil && ctx.Err() == nil {
			r.logger.Error("relay round failed", "err", err)
		} else if n > 0 {
			r.logger.Info("relayed packets", "count", n)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
