package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks report usage.
type Metrics struct {
	ReportsRendered *prometheus.CounterVec
	ReportRows      *prometheus.HistogramVec
}

func New() *Metrics {
	return &Metrics{
		ReportsRendered: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "amparo_reports_rendered_total",
			Help: "Reports rendered, by report and output format",
		}, []string{"report", "format"}),
		ReportRows: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "amparo_report_rows",
			Help:    "Rows returned per report query",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"report"}),
	}
}

func (m *Metrics) ObserveRows(report string, rows int) {
	m.ReportRows.WithLabelValues(report).Observe(float64(rows))
}

func (m *Metrics) IncrementRendered(report, format string) {
	m.ReportsRendered.WithLabelValues(report, format).Inc()
}
