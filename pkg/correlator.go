package reco

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Timing hits start unset; a negative time means no hit was kept.
const unsetTime = -1

type TrackPoint struct {
	Position r3.Vec
	Time     float64
}

// TimingHit is the earliest hit of a timing layer. Time is the smeared time
// used for the comparison; Position is the recorded, un-smeared position.
type TimingHit struct {
	Position r3.Vec
	Time     float64
	RawTime  float64
}

func (h TimingHit) Valid() bool {
	return h.Time >= 0
}

// keepEarliest replaces the kept hit when none is set or the new smeared time
// is strictly smaller.
func (h *TimingHit) keepEarliest(hit HitRecord, smearedTime float64) {
	if h.Time < 0 || smearedTime < h.Time {
		h.Time = smearedTime
		h.RawTime = hit.Time
		h.Position = hit.Position
	}
}

// TrackHitSet holds the hits of one charged decay product. Points keep the
// order in which the hits appear in the input stream.
type TrackHitSet struct {
	Sign         Sign
	Points       []TrackPoint
	VertexTiming TimingHit
	TimeOfFlight TimingHit
}

func newTrackHitSet(sign Sign) TrackHitSet {
	return TrackHitSet{
		Sign:         sign,
		Points:       make([]TrackPoint, 0),
		VertexTiming: TimingHit{Time: unsetTime},
		TimeOfFlight: TimingHit{Time: unsetTime},
	}
}

// CorrelateHits splits the hits of one event into the positive and negative
// track hit sets. Each timing hit of a charged product consumes one draw from
// smearing, in stream order.
func CorrelateHits(hits []HitRecord, signature Signature, classifier *DetectorClassifier,
	smearing Smearing, timeSigma float64) (TrackHitSet, TrackHitSet) {
	positive := newTrackHitSet(PositiveSign)
	negative := newTrackHitSet(NegativeSign)

	for _, hit := range hits {
		var set *TrackHitSet
		switch signature.SignOf(hit.PDG) {
		case PositiveSign:
			set = &positive
		case NegativeSign:
			set = &negative
		default:
			continue
		}

		role := classifier.Classify(hit.DeviceID)
		switch role {
		case Tracker:
			set.Points = append(set.Points, TrackPoint{Position: hit.Position, Time: hit.Time})
		case VertexTiming:
			smearedTime := smearing.Gaus(hit.Time, timeSigma)
			set.VertexTiming.keepEarliest(hit, smearedTime)
		case TimeOfFlight:
			smearedTime := smearing.Gaus(hit.Time, timeSigma)
			set.TimeOfFlight.keepEarliest(hit, smearedTime)
		}

		if configuration.Verbosity > 2 {
			message := fmt.Sprintf("Evt %d, %v hit, device %d (%v), t=%.4f ns",
				hit.EventID, set.Sign, hit.DeviceID, role, hit.Time)
			logger.Info(message, "correlator")
		}
	}
	return positive, negative
}
