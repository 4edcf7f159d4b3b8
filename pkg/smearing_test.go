package reco

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func draws(s *Smearer, n int) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = s.Gaus(0, 1)
	}
	return values
}

func TestSmearerIsSeeded(t *testing.T) {
	assert.Equal(t, draws(NewSmearer(42), 10), draws(NewSmearer(42), 10))
	assert.NotEqual(t, draws(NewSmearer(42), 10), draws(NewSmearer(43), 10))
}

func TestEventSmearerStreams(t *testing.T) {
	assert.Equal(t, draws(NewEventSmearer(7, 12), 10), draws(NewEventSmearer(7, 12), 10))
	assert.NotEqual(t, draws(NewEventSmearer(7, 12), 10), draws(NewEventSmearer(7, 13), 10))
	assert.NotEqual(t, draws(NewSmearer(7), 10), draws(NewEventSmearer(7, 0), 10))
}

func TestGausZeroSigma(t *testing.T) {
	s := NewSmearer(1)
	assert.Equal(t, 3.5, s.Gaus(3.5, 0))
}

func TestSmearTransverse(t *testing.T) {
	smearing := &scriptedSmearing{values: []float64{1.5, -2.5}}
	got := smearTransverse(smearing, r3.Vec{X: 1, Y: -2, Z: 300}, 5)
	assert.Equal(t, r3.Vec{X: 1.5, Y: -2.5, Z: 300}, got)
}
