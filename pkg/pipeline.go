package reco

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// Analysis holds everything needed to process the selected events of a file.
type Analysis struct {
	Signature  Signature
	Classifier *DetectorClassifier
	Kinematics Kinematics
	Seed       uint64
	NumWorkers int
	Parallel   bool
	MaxEvents  int
}

func NewAnalysis(config Configuration, classifier *DetectorClassifier) Analysis {
	return Analysis{
		Signature:  config.Signature,
		Classifier: classifier,
		Kinematics: config.Kinematics(),
		Seed:       config.Seed,
		NumWorkers: config.NumWorkers,
		Parallel:   config.Parallel,
		MaxEvents:  config.MaxEvents,
	}
}

// ProcessEvent correlates, reconstructs and joins truth for one selected event.
func (a Analysis) ProcessEvent(eventID int, hits HitIndex, truth TruthIndex, smearing Smearing) ReconstructedEvent {
	record := ReconstructedEvent{EventID: eventID}
	record.TrueMomentum, record.TrueVertex, record.HasTruth = truth.Join(eventID)

	positive, negative := CorrelateHits(hits[eventID], a.Signature, a.Classifier, smearing, a.Kinematics.TimeSmear)
	result, err := Reconstruct(eventID, positive, negative, a.Kinematics, smearing)
	if err != nil {
		var failure *ReconstructionFailure
		if errors.As(err, &failure) {
			record.Failure = failure.Reason
		}
		if configuration.Verbosity > 1 {
			logger.Info(err.Error(), "reconstructor")
		}
		return record
	}

	record.Reconstructable = true
	record.RecoMomentum = result.Momentum
	record.RecoVertex = result.Vertex
	if configuration.Verbosity > 1 {
		message := fmt.Sprintf("Event %d | Reco p: %.4f | True p: %.4f | Reco vertex: (%.2f, %.2f, %.2f)",
			eventID, record.RecoMomentum, record.TrueMomentum, record.RecoVertex.X, record.RecoVertex.Y, record.RecoVertex.Z)
		logger.Info(message, "reconstructor")
	}
	return record
}

func (a Analysis) safeProcessEvent(eventID int, hits HitIndex, truth TruthIndex, smearing Smearing) (record ReconstructedEvent) {
	defer func() {
		if r := recover(); r != nil {
			errMessage := fmt.Errorf("reconstruction recovered from panic on event %d: %v", eventID, r)
			logger.Error(errMessage.Error())
			record = ReconstructedEvent{EventID: eventID, Failure: WorkerPanic}
		}
	}()
	return a.ProcessEvent(eventID, hits, truth, smearing)
}

// Run selects the events of the input and reconstructs them. Sequential runs
// share one random stream across events in ascending id order; parallel runs
// use one stream per event and return the records sorted by event id, which
// makes the result independent of the number of workers.
func (a Analysis) Run(input *InputData) *Aggregator {
	start := time.Now()
	selected := SelectEvents(input.DecayProducts, a.Signature)
	if a.MaxEvents > 0 && len(selected) > a.MaxEvents {
		selected = selected[:a.MaxEvents]
	}

	hits := BuildHitIndex(input.Hits)
	truth := BuildTruthIndex(input.Truth)

	var agg *Aggregator
	if a.Parallel {
		agg = a.runParallel(selected, hits, truth)
	} else {
		agg = a.runSequential(selected, hits, truth)
	}

	if configuration.Verbosity > 0 {
		duration := time.Since(start)
		message := fmt.Sprintf("%s: %v in %d ms", input.Filename, agg.Counters(), duration.Milliseconds())
		logger.Info(message, "pipeline")
	}
	return agg
}

func (a Analysis) runSequential(selected []int, hits HitIndex, truth TruthIndex) *Aggregator {
	agg := NewAggregator()
	smearer := NewSmearer(a.Seed)
	for _, eventID := range selected {
		agg.Add(a.safeProcessEvent(eventID, hits, truth, smearer))
	}
	return agg
}

func (a Analysis) runParallel(selected []int, hits HitIndex, truth TruthIndex) *Aggregator {
	numWorkers := a.NumWorkers
	if numWorkers < 1 {
		numWorkers = 1
	}
	jobs := make(chan int, 100)
	results := make(chan ReconstructedEvent, 100)

	var wg sync.WaitGroup
	for w := 1; w <= numWorkers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			a.worker(id, jobs, results, hits, truth)
		}(w)
	}
	go sendEventsToWorkers(selected, jobs)
	go func() {
		wg.Wait()
		close(results)
	}()

	agg := NewAggregator()
	for record := range results {
		agg.Add(record)
	}
	agg.SortByEvent()
	return agg
}

func (a Analysis) worker(id int, jobs <-chan int, results chan<- ReconstructedEvent, hits HitIndex, truth TruthIndex) {
	for eventID := range jobs {
		if configuration.Verbosity > 2 {
			message := fmt.Sprintf("Worker %d processing event %d", id, eventID)
			logger.Info(message, "worker")
		}
		smearer := NewEventSmearer(a.Seed, eventID)
		results <- a.safeProcessEvent(eventID, hits, truth, smearer)
	}
}

func sendEventsToWorkers(selected []int, jobs chan<- int) {
	for _, eventID := range selected {
		jobs <- eventID
	}
	close(jobs)
}
