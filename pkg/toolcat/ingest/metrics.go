package ingest

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/cognicore/toolcat/pkg/toolcat/catalog"
	"github.com/cognicore/toolcat/pkg/toolcat/classify"
)

// Row outcomes counted by Metrics.Rows.
const (
	OutcomeKept      = "kept"
	OutcomeExcluded  = "excluded"
	OutcomeDuplicate = "duplicate"
)

// Metrics holds the pipeline's Prometheus instruments. A nil *Metrics
// records nothing.
type Metrics struct {
	Rows     *prometheus.CounterVec
	Defects  *prometheus.CounterVec
	Stages   *prometheus.CounterVec
	Duration prometheus.Histogram
}

// NewMetrics registers the pipeline metrics with reg. Pass
// prometheus.DefaultRegisterer to expose them process-wide.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Rows: f.NewCounterVec(prometheus.CounterOpts{
			Name: "toolcat_ingest_rows_total",
			Help: "Source rows processed, by outcome",
		}, []string{"outcome"}),
		Defects: f.NewCounterVec(prometheus.CounterOpts{
			Name: "toolcat_ingest_defects_total",
			Help: "Data-quality defects reported, by kind",
		}, []string{"kind"}),
		Stages: f.NewCounterVec(prometheus.CounterOpts{
			Name: "toolcat_classifier_decisions_total",
			Help: "Category completions, by deciding classifier tier",
		}, []string{"stage"}),
		Duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "toolcat_ingest_duration_seconds",
			Help:    "Wall time of a full pipeline run",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),
	}
}

func (m *Metrics) row(outcome string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.Rows.WithLabelValues(outcome).Add(float64(n))
}

func (m *Metrics) defects(defects []catalog.Defect) {
	if m == nil {
		return
	}
	for kind, n := range catalog.CountByKind(defects) {
		m.Defects.WithLabelValues(string(kind)).Add(float64(n))
	}
}

func (m *Metrics) stage(s classify.Stage) {
	if m == nil {
		return
	}
	m.Stages.WithLabelValues(s.String()).Inc()
}

func (m *Metrics) observe(d time.Duration) {
	if m == nil {
		return
	}
	m.Duration.Observe(d.Seconds())
}
