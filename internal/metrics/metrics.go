// Package metrics exposes Prometheus collectors for the daemon's
// block-submission loop. The protocol core never imports this package —
// SubmitBlock's correctness never depends on a collector call succeeding;
// the daemon wires these around the engine, not inside it.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Set groups the collectors the daemon registers on its own registry and
// serves over /metrics.
type Set struct {
	BlocksAccepted prometheus.Counter
	BlocksRejected *prometheus.CounterVec
	TxApplied      prometheus.Counter
	TipHeight      prometheus.Gauge

	registry *prometheus.Registry
}

// New builds a Set registered on a private registry, so the daemon's
// /metrics endpoint never leaks the default global registry's collectors.
func New() *Set {
	reg := prometheus.NewRegistry()

	s := &Set{
		BlocksAccepted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cakechain",
			Name:      "blocks_accepted_total",
			Help:      "Number of blocks accepted by the chain engine.",
		}),
		BlocksRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cakechain",
			Name:      "blocks_rejected_total",
			Help:      "Number of blocks rejected by the chain engine, by cause.",
		}, []string{"cause"}),
		TxApplied: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cakechain",
			Name:      "transactions_applied_total",
			Help:      "Number of transactions applied across all accepted blocks.",
		}),
		TipHeight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cakechain",
			Name:      "tip_height",
			Help:      "Height of the current chain tip.",
		}),
		registry: reg,
	}

	reg.MustRegister(s.BlocksAccepted, s.BlocksRejected, s.TxApplied, s.TipHeight)
	return s
}

// Registry returns the private registry the Set is collected on, for
// wiring into an HTTP /metrics handler.
func (s *Set) Registry() *prometheus.Registry {
	return s.registry
}
