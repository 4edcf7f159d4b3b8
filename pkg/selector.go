package reco

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Signature is the decay-product triplet an event must contain.
type Signature struct {
	Positive int `json:"positive" yaml:"positive" toml:"positive"`
	Negative int `json:"negative" yaml:"negative" toml:"negative"`
	Neutral  int `json:"neutral" yaml:"neutral" toml:"neutral"`
}

// ThreePionSignature is K-long -> pi+ pi- pi0.
var ThreePionSignature = Signature{Positive: 211, Negative: -211, Neutral: 111}

func (s Signature) String() string {
	return fmt.Sprintf("(%d, %d, %d)", s.Positive, s.Negative, s.Neutral)
}

// Sign tells which charged track a species belongs to.
type Sign int

const (
	NoSign Sign = iota
	PositiveSign
	NegativeSign
)

func (s Sign) String() string {
	switch s {
	case PositiveSign:
		return "positive"
	case NegativeSign:
		return "negative"
	default:
		return "none"
	}
}

// SignOf classifies a particle code against the charged members of the signature.
func (s Signature) SignOf(pdg int) Sign {
	switch pdg {
	case s.Positive:
		return PositiveSign
	case s.Negative:
		return NegativeSign
	default:
		return NoSign
	}
}

type seenSpecies struct {
	positive bool
	negative bool
	neutral  bool
}

// SelectEvents returns, in ascending order, the ids of the events whose decay
// products include every species of the signature. Extra products are allowed.
func SelectEvents(products []DecayProductRecord, signature Signature) []int {
	seen := make(map[int]*seenSpecies)
	for _, product := range products {
		species, ok := seen[product.EventID]
		if !ok {
			species = &seenSpecies{}
			seen[product.EventID] = species
		}
		switch product.PDG {
		case signature.Positive:
			species.positive = true
		case signature.Negative:
			species.negative = true
		case signature.Neutral:
			species.neutral = true
		}
	}

	selected := make([]int, 0)
	for eventID, species := range seen {
		if species.positive && species.negative && species.neutral {
			selected = append(selected, eventID)
		}
	}
	slices.Sort(selected)

	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Found %d events with %v as direct decay products", len(selected), signature)
		logger.Info(message, "selector")
	}
	return selected
}
