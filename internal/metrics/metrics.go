package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreMutations counts mutating store operations by name.
	StoreMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quizhub",
		Subsystem: "store",
		Name:      "mutations_total",
		Help:      "Mutating store operations.",
	}, []string{"op"})

	// SnapshotWrites counts snapshot persists by backend and outcome.
	SnapshotWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quizhub",
		Subsystem: "snapshot",
		Name:      "writes_total",
		Help:      "Snapshot persist attempts.",
	}, []string{"result"})

	// SnapshotBytes is the size of the last persisted snapshot.
	SnapshotBytes = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "quizhub",
		Subsystem: "snapshot",
		Name:      "size_bytes",
		Help:      "Size of the last serialized snapshot.",
	})

	// RemoteCalls counts simulated remote database calls.
	RemoteCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "quizhub",
		Subsystem: "remote",
		Name:      "calls_total",
		Help:      "Simulated remote database calls.",
	}, []string{"op", "result"})
)
