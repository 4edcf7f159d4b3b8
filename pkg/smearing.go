package reco

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/spatial/r3"
)

// Smearing draws Gaussian measurement noise.
type Smearing interface {
	Gaus(mean float64, sigma float64) float64
}

// Smearer is a seeded Gaussian source. A Smearer is not safe for concurrent
// use; parallel runs give every event its own stream with NewEventSmearer.
type Smearer struct {
	rng *rand.Rand
}

// NewSmearer returns the shared run stream used by sequential processing.
func NewSmearer(seed uint64) *Smearer {
	return &Smearer{rng: rand.New(rand.NewPCG(seed, 0))}
}

// NewEventSmearer derives an independent stream from the run seed and the
// event id, so the draws of an event do not depend on scheduling.
func NewEventSmearer(seed uint64, eventID int) *Smearer {
	return &Smearer{rng: rand.New(rand.NewPCG(seed, uint64(eventID)+1))}
}

func (s *Smearer) Gaus(mean float64, sigma float64) float64 {
	return mean + sigma*s.rng.NormFloat64()
}

// smearTransverse smears x then y; z is kept as the layer position.
func smearTransverse(smearing Smearing, position r3.Vec, sigma float64) r3.Vec {
	x := smearing.Gaus(position.X, sigma)
	y := smearing.Gaus(position.Y, sigma)
	return r3.Vec{X: x, Y: y, Z: position.Z}
}
