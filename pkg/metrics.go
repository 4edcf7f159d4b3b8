package reco

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes the run counters for a node-exporter textfile collector.
type Metrics struct {
	registry      *prometheus.Registry
	events        *prometheus.CounterVec
	momentum      prometheus.Histogram
	vertexResidue prometheus.Histogram
}

func NewMetrics(layout string) *Metrics {
	registry := prometheus.NewRegistry()
	labels := prometheus.Labels{"layout": layout}
	m := &Metrics{
		registry: registry,
		events: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "klreco_events_total",
			Help:        "Selected events by reconstruction outcome",
			ConstLabels: labels,
		}, []string{"outcome"}),
		momentum: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "klreco_reco_momentum_gev",
			Help:        "Reconstructed parent momentum",
			ConstLabels: labels,
			Buckets:     prometheus.LinearBuckets(0.5, 0.5, 22),
		}),
		vertexResidue: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:        "klreco_vertex_residual_cm",
			Help:        "Distance between reconstructed and true decay vertex",
			ConstLabels: labels,
			Buckets:     prometheus.ExponentialBuckets(0.01, 2, 16),
		}),
	}
	registry.MustRegister(m.events, m.momentum, m.vertexResidue)
	return m
}

func outcomeLabel(record ReconstructedEvent) string {
	if record.Reconstructable {
		return "reconstructed"
	}
	switch record.Failure {
	case InsufficientTrackHits:
		return "no_hits"
	case MissingVertexTiming, MissingTimeOfFlight:
		return "timing_fail"
	case NonPhysicalVelocity:
		return "non_physical"
	case MomentumOutOfRange:
		return "high_momentum"
	default:
		return "error"
	}
}

func (m *Metrics) Observe(record ReconstructedEvent) {
	m.events.WithLabelValues(outcomeLabel(record)).Inc()
	if !record.Reconstructable {
		return
	}
	m.momentum.Observe(record.RecoMomentum)
	if record.HasTruth {
		m.vertexResidue.Observe(record.VertexResidual())
	}
}

// ObserveAll feeds every record of the aggregator.
func (m *Metrics) ObserveAll(agg *Aggregator) {
	for _, record := range agg.Records() {
		m.Observe(record)
	}
}

func (m *Metrics) WriteTextfile(filename string) error {
	if err := prometheus.WriteToTextfile(filename, m.registry); err != nil {
		return fmt.Errorf("error writing metrics to %s: %w", filename, err)
	}
	return nil
}
