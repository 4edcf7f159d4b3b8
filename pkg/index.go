package reco

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// HitIndex groups hits by event id, keeping the input order inside an event.
type HitIndex map[int][]HitRecord

// BuildHitIndex scans the hit table once.
func BuildHitIndex(hits []HitRecord) HitIndex {
	index := make(HitIndex)
	for _, hit := range hits {
		index[hit.EventID] = append(index[hit.EventID], hit)
	}
	return index
}

// TruthIndex maps event ids to their truth record.
type TruthIndex map[int]TruthRecord

// BuildTruthIndex keeps the first record seen for each event id.
func BuildTruthIndex(truth []TruthRecord) TruthIndex {
	index := make(TruthIndex, len(truth))
	for _, record := range truth {
		if _, ok := index[record.EventID]; ok {
			if configuration.Verbosity > 1 {
				message := fmt.Sprintf("Duplicated truth record for event %d ignored", record.EventID)
				logger.Info(message, "truth")
			}
			continue
		}
		index[record.EventID] = record
	}
	return index
}

// Join returns the true parent momentum magnitude and decay vertex. A missing
// event gives a zero momentum and ok == false.
func (t TruthIndex) Join(eventID int) (momentum float64, vertex r3.Vec, ok bool) {
	record, ok := t[eventID]
	if !ok {
		return 0, r3.Vec{}, false
	}
	return r3.Norm(record.Momentum), record.Vertex, true
}

func vecFromArray(a [3]float64) r3.Vec {
	return r3.Vec{X: a[0], Y: a[1], Z: a[2]}
}
