package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Conflict sources for the duplicate-active counter.
const (
	SourcePrecheck   = "precheck"
	SourceConstraint = "constraint"
)

// Metrics provides observability for the assignment ledger.
type Metrics struct {
	AssignmentsCreated prometheus.Counter
	AssignmentsEnded   prometheus.Counter
	DuplicateActive    *prometheus.CounterVec
}

// New creates Metrics registered on the default Prometheus registry.
func New() *Metrics {
	return &Metrics{
		AssignmentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "amparo_assignments_created_total",
			Help: "Total number of benefit assignments created",
		}),
		AssignmentsEnded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "amparo_assignments_ended_total",
			Help: "Total number of assignments closed through the end action",
		}),
		DuplicateActive: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "amparo_assignment_duplicate_active_total",
			Help: "Saves rejected because the pair already had an active cycle, by detection source",
		}, []string{"source"}),
	}
}

func (m *Metrics) IncrementCreated() {
	m.AssignmentsCreated.Inc()
}

func (m *Metrics) IncrementEnded() {
	m.AssignmentsEnded.Inc()
}

// IncrementDuplicate counts a rejected duplicate. source is SourcePrecheck or
// SourceConstraint; the latter means a concurrent request won the race.
func (m *Metrics) IncrementDuplicate(source string) {
	m.DuplicateActive.WithLabelValues(source).Inc()
}
