package reco

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsObserve(t *testing.T) {
	m := NewMetrics("segmented")
	agg := NewAggregator()
	agg.Add(ReconstructedEvent{EventID: 1, Reconstructable: true, RecoMomentum: 2, HasTruth: true})
	agg.Add(ReconstructedEvent{EventID: 2, Reconstructable: true, RecoMomentum: 3})
	agg.Add(ReconstructedEvent{EventID: 3, Failure: MissingVertexTiming})
	agg.Add(ReconstructedEvent{EventID: 4, Failure: MissingTimeOfFlight})
	agg.Add(ReconstructedEvent{EventID: 5, Failure: WorkerPanic})
	m.ObserveAll(agg)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.events.WithLabelValues("reconstructed")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.events.WithLabelValues("timing_fail")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.events.WithLabelValues("error")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.momentum))
	assert.Equal(t, 3, testutil.CollectAndCount(m.events))
}

func TestOutcomeLabel(t *testing.T) {
	assert.Equal(t, "no_hits", outcomeLabel(ReconstructedEvent{Failure: InsufficientTrackHits}))
	assert.Equal(t, "non_physical", outcomeLabel(ReconstructedEvent{Failure: NonPhysicalVelocity}))
	assert.Equal(t, "high_momentum", outcomeLabel(ReconstructedEvent{Failure: MomentumOutOfRange}))
	assert.Equal(t, "reconstructed", outcomeLabel(ReconstructedEvent{Reconstructable: true}))
}

func TestMetricsWriteTextfile(t *testing.T) {
	m := NewMetrics("planar")
	m.Observe(ReconstructedEvent{Reconstructable: true, RecoMomentum: 4, HasTruth: true})

	filename := filepath.Join(t.TempDir(), "klreco.prom")
	require.NoError(t, m.WriteTextfile(filename))
	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(data), `klreco_events_total{layout="planar",outcome="reconstructed"} 1`)
	assert.Contains(t, string(data), "klreco_vertex_residual_cm")
}
