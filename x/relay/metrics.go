package relay

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	relayedPackets = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fungible",
			Subsystem: "relay",
			Name:      "packets_relayed_total",
			Help:      "Total number of packets delivered to the destination chain",
		},
		[]string{"source", "destination"},
	)

	failedPackets = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fungible",
			Subsystem: "relay",
			Name:      "packets_failed_total",
			Help:      "Total number of packet deliveries that failed",
		},
		[]string{"source", "destination"},
	)

	pendingPackets = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "fungible",
			Subsystem: "relay",
			Name:      "packets_pending",
			Help:      "Number of packets in the source outbox not yet delivered",
		},
		[]string{"source", "destination"},
	)

	relayDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "fungible",
			Subsystem: "relay",
			Name:      "round_duration_seconds",
			Help:      "Time taken by a single relay round",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

// RegisterMetrics registers the relayer metrics with given registerer.
// Metrics that are already registered are ignored.
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{relayedPackets, failedPackets, pendingPackets, relayDuration} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}
