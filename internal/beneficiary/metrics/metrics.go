package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the beneficiary registry.
type Metrics struct {
	BeneficiariesCreated prometheus.Counter
	CodeCollisions       prometheus.Counter
	SaveDuration         prometheus.Histogram
}

// New creates Metrics registered on the default Prometheus registry.
func New() *Metrics {
	return &Metrics{
		BeneficiariesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "amparo_beneficiaries_created_total",
			Help: "Total number of beneficiaries registered",
		}),
		CodeCollisions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "amparo_beneficiary_code_collisions_total",
			Help: "Generated beneficiary codes discarded because they were already taken",
		}),
		SaveDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "amparo_beneficiary_save_duration_seconds",
			Help:    "Duration of beneficiary create and update operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncrementCreated() {
	m.BeneficiariesCreated.Inc()
}

func (m *Metrics) IncrementCodeCollision() {
	m.CodeCollisions.Inc()
}

// ObserveSave records the duration of a save. Call with time.Now() at the
// start of the operation.
func (m *Metrics) ObserveSave(start time.Time) {
	m.SaveDuration.Observe(time.Since(start).Seconds())
}
