package reco

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// exactSmearing returns the mean of every draw.
type exactSmearing struct{}

func (exactSmearing) Gaus(mean float64, sigma float64) float64 {
	return mean
}

// scriptedSmearing returns its values in order, then falls back to the mean.
type scriptedSmearing struct {
	values []float64
	calls  int
}

func (s *scriptedSmearing) Gaus(mean float64, sigma float64) float64 {
	defer func() { s.calls++ }()
	if s.calls < len(s.values) {
		return s.values[s.calls]
	}
	return mean
}

type draw struct {
	mean  float64
	sigma float64
}

// recordingSmearing keeps every request and returns the mean.
type recordingSmearing struct {
	draws []draw
}

func (s *recordingSmearing) Gaus(mean float64, sigma float64) float64 {
	s.draws = append(s.draws, draw{mean: mean, sigma: sigma})
	return mean
}

// decayGeometry describes a generated decay: a parent of momentum P decaying
// at Vertex, and two pions leaving along the given directions.
type decayGeometry struct {
	P            float64
	Vertex       r3.Vec
	DirPositive  r3.Vec
	DirNegative  r3.Vec
	BetaPositive float64
	BetaNegative float64
}

func defaultDecay() decayGeometry {
	return decayGeometry{
		P:            2,
		Vertex:       r3.Vec{X: 10, Y: -5, Z: 200},
		DirPositive:  unit(r3.Vec{X: 0.1, Y: 0.2, Z: 1}),
		DirNegative:  unit(r3.Vec{X: -0.15, Y: 0.05, Z: 1}),
		BetaPositive: 0.9,
		BetaNegative: 0.8,
	}
}

// decayTime is the time in s at which the parent, produced at the origin at
// t = 0, reaches the vertex.
func (g decayGeometry) decayTime() float64 {
	beta := g.P / math.Hypot(g.P, KaonMass)
	return r3.Norm(g.Vertex) * cmToM / (beta * SpeedOfLight)
}

// trackHits builds the hits of one pion: two tracker points, one
// vertex-timing and one time-of-flight hit, in the segmented layout.
func (g decayGeometry) trackHits(eventID int, pdg int, dir r3.Vec, beta float64) []HitRecord {
	t0 := g.decayTime()
	v := beta * SpeedOfLight
	at := func(distance float64) (r3.Vec, float64) {
		pos := r3.Add(g.Vertex, r3.Scale(distance, dir))
		return pos, (t0 + distance*cmToM/v) / nsToS
	}
	hit := func(distance float64, device int) HitRecord {
		pos, t := at(distance)
		return HitRecord{EventID: eventID, Edep: 0.1, Position: pos, Time: t, DeviceID: device, PDG: pdg}
	}
	return []HitRecord{
		hit(10, 10),
		hit(20, 20),
		hit(30, 500),
		hit(100, 600),
	}
}

func (g decayGeometry) hits(eventID int) []HitRecord {
	hits := g.trackHits(eventID, 211, g.DirPositive, g.BetaPositive)
	return append(hits, g.trackHits(eventID, -211, g.DirNegative, g.BetaNegative)...)
}

func (g decayGeometry) truth(eventID int) TruthRecord {
	return TruthRecord{
		EventID:  eventID,
		Momentum: r3.Scale(g.P, unit(g.Vertex)),
		Vertex:   g.Vertex,
	}
}

func threePionProducts(eventID int) []DecayProductRecord {
	return []DecayProductRecord{
		{EventID: eventID, PDG: 211},
		{EventID: eventID, PDG: -211},
		{EventID: eventID, PDG: 111},
	}
}

func testKinematics() Kinematics {
	return Kinematics{
		PositionSmear:   5,
		TimeSmear:       0.0015,
		ParentMass:      KaonMass,
		SpeedOfLight:    SpeedOfLight,
		MomentumCeiling: 11,
	}
}

func segmentedLayout() *DetectorClassifier {
	classifier, err := BuiltinLayout("segmented")
	if err != nil {
		panic(err)
	}
	return classifier
}
