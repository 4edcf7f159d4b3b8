package reco

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcceptanceBins(t *testing.T) {
	summary, err := NewAcceptanceSummary(0, 10, 0.5, 1)
	require.NoError(t, err)

	summary.Fill(ReconstructedEvent{EventID: 1, HasTruth: true, TrueMomentum: 1.2, Reconstructable: true, RecoMomentum: 1.3})
	summary.Fill(ReconstructedEvent{EventID: 2, HasTruth: true, TrueMomentum: 1.3, Failure: MissingTimeOfFlight})
	// Far off: counted for the efficiency, left out of the resolution
	summary.Fill(ReconstructedEvent{EventID: 3, HasTruth: true, TrueMomentum: 1.4, Reconstructable: true, RecoMomentum: 5})
	summary.Fill(ReconstructedEvent{EventID: 4, HasTruth: true, TrueMomentum: 7.7, Failure: InsufficientTrackHits})
	summary.Fill(ReconstructedEvent{EventID: 5, Reconstructable: true, RecoMomentum: 2})

	bins := summary.Bins()
	require.Len(t, bins, 20)
	assert.Equal(t, 1, summary.Skipped())

	bin := bins[2]
	assert.InDelta(t, 1.0, bin.Low, 1e-12)
	assert.InDelta(t, 1.5, bin.High, 1e-12)
	assert.Equal(t, 3.0, bin.Total)
	assert.Equal(t, 2.0, bin.Reconstructed)
	assert.InDelta(t, 2.0/3, bin.Efficiency, 1e-12)
	assert.InDelta(t, 0.2721655, bin.Error, 1e-6)
	assert.InDelta(t, 0.1/1.2, bin.Resolution, 1e-9)

	assert.Equal(t, 1.0, bins[15].Total)
	assert.Zero(t, bins[15].Efficiency)
	assert.Zero(t, bins[0].Total)
	assert.Zero(t, bins[0].Error)
}

func TestAcceptanceFillAll(t *testing.T) {
	agg := testAnalysis(exactConfiguration()).Run(syntheticInput(10, func(eventID int) bool { return eventID > 6 }))
	summary, err := NewAcceptanceSummary(0, 10, 0.5, 1)
	require.NoError(t, err)
	summary.FillAll(agg)

	var total, reconstructed float64
	for _, bin := range summary.Bins() {
		total += bin.Total
		reconstructed += bin.Reconstructed
		if bin.Total > 0 {
			assert.InDelta(t, 0.6, bin.Efficiency, 1e-12)
			assert.InDelta(t, 0, bin.Resolution, 1e-9)
		}
	}
	assert.Equal(t, 10.0, total)
	assert.Equal(t, 6.0, reconstructed)
}

func TestAcceptanceInvalidBinning(t *testing.T) {
	_, err := NewAcceptanceSummary(0, 10, 0, 1)
	assert.Error(t, err)
	_, err = NewAcceptanceSummary(5, 5, 0.5, 1)
	assert.Error(t, err)
}

func TestAcceptanceSavePlot(t *testing.T) {
	summary, err := NewAcceptanceSummary(0, 10, 0.5, 1)
	require.NoError(t, err)
	summary.Fill(ReconstructedEvent{HasTruth: true, TrueMomentum: 2.2, Reconstructable: true, RecoMomentum: 2.1})
	summary.Fill(ReconstructedEvent{HasTruth: true, TrueMomentum: 2.3})

	filename := filepath.Join(t.TempDir(), "acceptance.png")
	require.NoError(t, summary.SavePlot(filename, "K_L acceptance"))
	info, err := os.Stat(filename)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
