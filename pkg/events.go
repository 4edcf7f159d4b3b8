package reco

import "gonum.org/v1/gonum/spatial/r3"

// HitRecord is one energy deposit registered by a detector element.
type HitRecord struct {
	EventID  int
	Edep     float64
	Position r3.Vec // cm
	Time     float64 // ns
	DeviceID int
	PDG      int
}

// DecayProductRecord is one particle produced directly in the parent decay.
type DecayProductRecord struct {
	EventID  int
	PDG      int
	Momentum r3.Vec // GeV/c, zero when the input does not carry it
}

// TruthRecord holds the generated parent kinematics at the decay point.
type TruthRecord struct {
	EventID   int
	Momentum  r3.Vec // GeV/c
	Vertex    r3.Vec // cm
	DecayTime float64
}

// InputData holds the three input tables of one analysis file.
type InputData struct {
	Filename      string
	Truth         []TruthRecord
	DecayProducts []DecayProductRecord
	Hits          []HitRecord
}

// ReconstructedEvent is the outcome for one selected event. RecoMomentum and
// RecoVertex are only meaningful when Reconstructable is true, TrueVertex only
// when HasTruth is true.
type ReconstructedEvent struct {
	EventID         int
	Reconstructable bool
	Failure         FailureReason
	RecoMomentum    float64
	RecoVertex      r3.Vec
	TrueMomentum    float64
	TrueVertex      r3.Vec
	HasTruth        bool
}

// VertexResidual is |recoVertex - trueVertex| in cm.
func (e ReconstructedEvent) VertexResidual() float64 {
	return r3.Norm(r3.Sub(e.RecoVertex, e.TrueVertex))
}
