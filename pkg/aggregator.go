package reco

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Counters are the diagnostic totals of a run.
type Counters struct {
	Selected       int
	Reconstructed  int
	NoHits         int
	TimingFailures int
	NonPhysical    int
	HighMomentum   int
	MissingTruth   int
	Errors         int
}

// Aggregator collects one record per processed event in processing order.
type Aggregator struct {
	records  []ReconstructedEvent
	counters Counters
}

func NewAggregator() *Aggregator {
	return &Aggregator{records: make([]ReconstructedEvent, 0)}
}

func (a *Aggregator) Add(record ReconstructedEvent) {
	a.records = append(a.records, record)
	a.counters.Selected++
	if !record.HasTruth {
		a.counters.MissingTruth++
	}
	switch record.Failure {
	case NoFailure:
		if record.Reconstructable {
			a.counters.Reconstructed++
		}
	case InsufficientTrackHits:
		a.counters.NoHits++
	case MissingVertexTiming, MissingTimeOfFlight:
		a.counters.TimingFailures++
	case NonPhysicalVelocity:
		a.counters.NonPhysical++
	case MomentumOutOfRange:
		a.counters.HighMomentum++
	case WorkerPanic:
		a.counters.Errors++
	}
}

// SortByEvent orders the records by event id. Parallel runs call it after
// merging worker results.
func (a *Aggregator) SortByEvent() {
	slices.SortStableFunc(a.records, func(x, y ReconstructedEvent) int {
		return x.EventID - y.EventID
	})
}

func (a *Aggregator) Total() int {
	return len(a.records)
}

func (a *Aggregator) Reconstructed() int {
	return a.counters.Reconstructed
}

func (a *Aggregator) Counters() Counters {
	return a.counters
}

// Records returns the records in their current order.
func (a *Aggregator) Records() []ReconstructedEvent {
	return a.records
}

func (c Counters) String() string {
	return fmt.Sprintf("selected=%d reconstructed=%d no_hits=%d timing_fail=%d non_physical=%d high_momentum=%d missing_truth=%d errors=%d",
		c.Selected, c.Reconstructed, c.NoHits, c.TimingFailures, c.NonPhysical, c.HighMomentum, c.MissingTruth, c.Errors)
}
