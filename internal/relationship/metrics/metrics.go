package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the relationship checker.
type Metrics struct {
	LookupLatency  prometheus.Histogram
	LookupFailures prometheus.Counter
	SweepSize      prometheus.Histogram
}

// New creates a Metrics instance with all checker metrics registered.
func New() *Metrics {
	return &Metrics{
		LookupLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "filtro_relationship_lookup_duration_seconds",
			Help:    "Duration of individual relatives-registry lookups",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		LookupFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "filtro_relationship_lookup_failures_total",
			Help: "Total lookups absorbed as errored results",
		}),
		SweepSize: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "filtro_relationship_sweep_size",
			Help:    "Identifiers checked per sweep",
			Buckets: []float64{1, 2, 5, 10, 20, 50},
		}),
	}
}

// ObserveLookupLatency records the duration of one lookup.
func (m *Metrics) ObserveLookupLatency(d time.Duration) {
	if m != nil {
		m.LookupLatency.Observe(d.Seconds())
	}
}

// IncrementLookupFailure records a lookup absorbed as an errored result.
func (m *Metrics) IncrementLookupFailure() {
	if m != nil {
		m.LookupFailures.Inc()
	}
}

// ObserveSweepSize records how many identifiers one sweep covered.
func (m *Metrics) ObserveSweepSize(n int) {
	if m != nil {
		m.SweepSize.Observe(float64(n))
	}
}
