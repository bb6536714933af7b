package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Login outcomes.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
	OutcomeLocked   = "locked"
)

// Metrics provides observability for operator sign-in.
type Metrics struct {
	Logins  *prometheus.CounterVec
	Logouts prometheus.Counter
}

// New creates Metrics registered on the default Prometheus registry.
func New() *Metrics {
	return &Metrics{
		Logins: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "amparo_operator_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		Logouts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "amparo_operator_logouts_total",
			Help: "Tokens revoked by logout",
		}),
	}
}

func (m *Metrics) IncrementLogin(outcome string) {
	m.Logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementLogout() {
	m.Logouts.Inc()
}
