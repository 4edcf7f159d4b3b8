package reco

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	KaonMass     = 0.497611     // GeV/c^2
	SpeedOfLight = 2.99792458e8 // m/s

	// Used in place of beta >= 1 coming from smeared timing.
	betaClamp = 0.9999

	cmToM = 1e-2
	nsToS = 1e-9
)

// Kinematics holds the constants of the reconstruction.
type Kinematics struct {
	PositionSmear   float64 // cm
	TimeSmear       float64 // ns
	ParentMass      float64 // GeV/c^2
	SpeedOfLight    float64 // m/s
	MomentumCeiling float64 // GeV/c
	// The parent is assumed to be produced here at t = 0.
	ProductionPoint r3.Vec
}

type FailureReason int

const (
	NoFailure FailureReason = iota
	InsufficientTrackHits
	MissingVertexTiming
	MissingTimeOfFlight
	NonPhysicalVelocity
	MomentumOutOfRange
	WorkerPanic
)

func (f FailureReason) String() string {
	switch f {
	case NoFailure:
		return "none"
	case InsufficientTrackHits:
		return "insufficient tracker hits"
	case MissingVertexTiming:
		return "missing vertex-timing hit"
	case MissingTimeOfFlight:
		return "missing time-of-flight hit"
	case NonPhysicalVelocity:
		return "non-physical velocity"
	case MomentumOutOfRange:
		return "momentum out of range"
	case WorkerPanic:
		return "worker panic"
	default:
		return "unknown"
	}
}

// ReconstructionFailure tells why an event could not be reconstructed.
type ReconstructionFailure struct {
	EventID int
	Reason  FailureReason
	Detail  string
}

func (e *ReconstructionFailure) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("event %d: %v", e.EventID, e.Reason)
	}
	return fmt.Sprintf("event %d: %v (%s)", e.EventID, e.Reason, e.Detail)
}

// Reconstruction is the successful result for one event.
type Reconstruction struct {
	Momentum   float64 // GeV/c
	Vertex     r3.Vec  // cm
	DecayTime  float64 // s
	Beta       float64
	Velocities [2]float64 // m/s, positive and negative track
}

// trackTiming is the per-track time-of-flight measurement.
type trackTiming struct {
	vertexTimingPos r3.Vec
	vertexTimingT   float64 // ns
	tofPos          r3.Vec
	tofT            float64 // ns
}

// velocity returns the speed between the two timing layers in m/s, 0 when
// the time difference is not positive.
func (t trackTiming) velocity() float64 {
	trackLength := r3.Norm(r3.Sub(t.tofPos, t.vertexTimingPos))
	dt := t.tofT - t.vertexTimingT
	if dt <= 0 {
		return 0
	}
	return trackLength * cmToM / (dt * nsToS)
}

// emissionTime extrapolates back from the vertex-timing layer to the vertex.
func (t trackTiming) emissionTime(vertex r3.Vec, velocity float64) float64 {
	path := r3.Norm(r3.Sub(t.vertexTimingPos, vertex))
	return t.vertexTimingT*nsToS - path*cmToM/velocity
}

func checkPreconditions(eventID int, sets ...TrackHitSet) error {
	for _, set := range sets {
		if len(set.Points) < 2 {
			return &ReconstructionFailure{EventID: eventID, Reason: InsufficientTrackHits,
				Detail: fmt.Sprintf("%v track has %d points", set.Sign, len(set.Points))}
		}
	}
	for _, set := range sets {
		if !set.VertexTiming.Valid() {
			return &ReconstructionFailure{EventID: eventID, Reason: MissingVertexTiming,
				Detail: fmt.Sprintf("%v track", set.Sign)}
		}
	}
	for _, set := range sets {
		if !set.TimeOfFlight.Valid() {
			return &ReconstructionFailure{EventID: eventID, Reason: MissingTimeOfFlight,
				Detail: fmt.Sprintf("%v track", set.Sign)}
		}
	}
	return nil
}

// chord is the line through the first tracker point towards the last one.
func chord(set TrackHitSet) (r3.Vec, r3.Vec) {
	start := set.Points[0].Position
	end := set.Points[len(set.Points)-1].Position
	return start, unit(r3.Sub(end, start))
}

// Reconstruct computes the parent momentum and decay vertex of one event.
// Failures are returned as *ReconstructionFailure. Random draws are taken in a
// fixed order: vertex-timing positions (positive, negative), then
// time-of-flight positions (positive, negative), x before y.
func Reconstruct(eventID int, positive, negative TrackHitSet, k Kinematics, smearing Smearing) (Reconstruction, error) {
	if err := checkPreconditions(eventID, positive, negative); err != nil {
		return Reconstruction{}, err
	}

	posTiming := trackTiming{vertexTimingT: positive.VertexTiming.Time, tofT: positive.TimeOfFlight.Time}
	negTiming := trackTiming{vertexTimingT: negative.VertexTiming.Time, tofT: negative.TimeOfFlight.Time}

	posTiming.vertexTimingPos = smearTransverse(smearing, positive.VertexTiming.Position, k.PositionSmear)
	negTiming.vertexTimingPos = smearTransverse(smearing, negative.VertexTiming.Position, k.PositionSmear)

	posStart, posDir := chord(positive)
	negStart, negDir := chord(negative)
	vertex := ClosestPointBetweenLines(posStart, posDir, negStart, negDir)

	posTiming.tofPos = smearTransverse(smearing, positive.TimeOfFlight.Position, k.PositionSmear)
	negTiming.tofPos = smearTransverse(smearing, negative.TimeOfFlight.Position, k.PositionSmear)

	posVelocity := posTiming.velocity()
	negVelocity := negTiming.velocity()
	if posVelocity == 0 || negVelocity == 0 {
		return Reconstruction{}, &ReconstructionFailure{EventID: eventID, Reason: NonPhysicalVelocity,
			Detail: fmt.Sprintf("v+=%g m/s, v-=%g m/s", posVelocity, negVelocity)}
	}

	posEmission := posTiming.emissionTime(vertex, posVelocity)
	negEmission := negTiming.emissionTime(vertex, negVelocity)
	decayTime := 0.5 * (posEmission + negEmission)
	if math.IsNaN(decayTime) || math.IsInf(decayTime, 0) {
		return Reconstruction{}, &ReconstructionFailure{EventID: eventID, Reason: NonPhysicalVelocity,
			Detail: "non-finite decay time"}
	}

	flightLength := r3.Norm(r3.Sub(vertex, k.ProductionPoint))
	parentVelocity := flightLength * cmToM / decayTime
	beta := parentVelocity / k.SpeedOfLight
	if beta >= 1 {
		beta = betaClamp
	}
	gamma := 1 / math.Sqrt(1-beta*beta)
	momentum := gamma * k.ParentMass * beta

	result := Reconstruction{
		Momentum:   momentum,
		Vertex:     vertex,
		DecayTime:  decayTime,
		Beta:       beta,
		Velocities: [2]float64{posVelocity, negVelocity},
	}

	if !(momentum > 0 && momentum <= k.MomentumCeiling) {
		return result, &ReconstructionFailure{EventID: eventID, Reason: MomentumOutOfRange,
			Detail: fmt.Sprintf("p=%g GeV/c", momentum)}
	}
	return result, nil
}
