package relay

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Relayed  prometheus.Counter
	Failures prometheus.Counter
	Lag      prometheus.Histogram
}

// NewMetrics registers the relay collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Relayed: factory.NewCounter(prometheus.CounterOpts{
			Name: "amparo_outbox_relayed_total",
			Help: "Audit events published to the broker",
		}),
		Failures: factory.NewCounter(prometheus.CounterOpts{
			Name: "amparo_outbox_relay_failures_total",
			Help: "Relay iterations that failed",
		}),
		Lag: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "amparo_outbox_relay_lag_seconds",
			Help:    "Age of the oldest event in each relayed batch",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
	}
}
