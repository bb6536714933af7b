package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for batch generation and the checklist.
type Metrics struct {
	BatchesCreated   prometheus.Counter
	ItemsGenerated   prometheus.Counter
	SnapshotSize     prometheus.Histogram
	ChecklistChanges *prometheus.CounterVec
}

// New creates Metrics registered on the default Prometheus registry.
func New() *Metrics {
	return &Metrics{
		BatchesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "amparo_batches_created_total",
			Help: "Total number of distribution batches created",
		}),
		ItemsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "amparo_delivery_items_generated_total",
			Help: "Delivery items inserted by batch snapshots",
		}),
		SnapshotSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "amparo_batch_snapshot_size",
			Help:    "Number of eligible assignments found per batch snapshot",
			Buckets: prometheus.ExponentialBuckets(1, 2, 10),
		}),
		ChecklistChanges: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "amparo_checklist_changes_total",
			Help: "Delivery items flipped by checklist writes, by new value",
		}, []string{"delivered"}),
	}
}

func (m *Metrics) IncrementBatchesCreated() {
	m.BatchesCreated.Inc()
}

// ObserveSnapshot records one generation run: eligible assignments found and
// items actually inserted.
func (m *Metrics) ObserveSnapshot(eligible, inserted int) {
	m.SnapshotSize.Observe(float64(eligible))
	m.ItemsGenerated.Add(float64(inserted))
}

func (m *Metrics) AddChecklistChanges(delivered bool, n int) {
	if n == 0 {
		return
	}
	label := "false"
	if delivered {
		label = "true"
	}
	m.ChecklistChanges.WithLabelValues(label).Add(float64(n))
}
