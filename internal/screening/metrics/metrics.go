package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the screening module.
type Metrics struct {
	// Source fetch latencies by source tag
	SourceLatency *prometheus.HistogramVec

	// Source fetch failures by source tag
	SourceFailures *prometheus.CounterVec

	// Decision outcomes by status and reason
	DecisionOutcome *prometheus.CounterVec

	// Organizations per batch request
	BatchSize prometheus.Histogram
}

// New creates a Metrics instance with all screening metrics registered.
func New() *Metrics {
	return &Metrics{
		SourceLatency: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "filtro_screening_source_duration_seconds",
			Help:    "Duration of person-registry fetches by source",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}),

		SourceFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "filtro_screening_source_failures_total",
			Help: "Total source fetches that failed and were tolerated",
		}, []string{"source"}),

		DecisionOutcome: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "filtro_screening_decisions_total",
			Help: "Total screening decisions by status and reason",
		}, []string{"status", "reason"}),

		BatchSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "filtro_screening_batch_size",
			Help:    "Organizations per batch request",
			Buckets: []float64{1, 2, 3, 5, 10, 20},
		}),
	}
}

// ObserveSourceLatency records the duration of one source fetch.
func (m *Metrics) ObserveSourceLatency(source string, d time.Duration) {
	if m != nil {
		m.SourceLatency.WithLabelValues(source).Observe(d.Seconds())
	}
}

// IncrementSourceFailure records a tolerated source failure.
func (m *Metrics) IncrementSourceFailure(source string) {
	if m != nil {
		m.SourceFailures.WithLabelValues(source).Inc()
	}
}

// IncrementOutcome records one screening decision.
func (m *Metrics) IncrementOutcome(approved bool, reason string) {
	if m == nil {
		return
	}
	status := "approved"
	if !approved {
		status = "rejected"
	}
	if reason == "" {
		reason = "none"
	}
	m.DecisionOutcome.WithLabelValues(status, reason).Inc()
}

// ObserveBatchSize records how many organizations a batch carried.
func (m *Metrics) ObserveBatchSize(n int) {
	if m != nil {
		m.BatchSize.Observe(float64(n))
	}
}
