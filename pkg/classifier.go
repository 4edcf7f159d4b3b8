package reco

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// RoleRange assigns the inclusive id range [Min, Max] to a role.
type RoleRange struct {
	Role DetectorRole `json:"role" yaml:"role" toml:"role"`
	Min  int          `json:"min" yaml:"min" toml:"min"`
	Max  int          `json:"max" yaml:"max" toml:"max"`
}

func (r RoleRange) String() string {
	return fmt.Sprintf("%s[%d-%d]", r.Role, r.Min, r.Max)
}

func (r RoleRange) contains(id int) bool {
	return id >= r.Min && id <= r.Max
}

// DetectorClassifier maps detector element ids to their role for one layout.
type DetectorClassifier struct {
	name   string
	ranges []RoleRange
}

// NewDetectorClassifier checks that the ranges are well formed and disjoint.
// Several ranges may share a role.
func NewDetectorClassifier(name string, ranges []RoleRange) (*DetectorClassifier, error) {
	sorted := make([]RoleRange, len(ranges))
	copy(sorted, ranges)
	slices.SortFunc(sorted, func(a, b RoleRange) int {
		return a.Min - b.Min
	})

	for i, r := range sorted {
		if r.Min > r.Max {
			return nil, fmt.Errorf("layout %q: empty range %v", name, r)
		}
		if r.Role == Unclassified {
			return nil, fmt.Errorf("layout %q: range %v has no role", name, r)
		}
		if i > 0 && sorted[i-1].Max >= r.Min {
			return nil, &ErrLayoutOverlap{Layout: name, First: sorted[i-1], Second: r}
		}
	}
	return &DetectorClassifier{name: name, ranges: sorted}, nil
}

func (c *DetectorClassifier) Name() string {
	return c.name
}

// Ranges returns the ranges ordered by their first id.
func (c *DetectorClassifier) Ranges() []RoleRange {
	return slices.Clone(c.ranges)
}

func (c *DetectorClassifier) Classify(deviceID int) DetectorRole {
	for _, r := range c.ranges {
		if r.contains(deviceID) {
			return r.Role
		}
	}
	return Unclassified
}

// The forward tracker planes of both layouts sample the trajectory and are
// classified as tracker elements.
var builtinLayouts = map[string][]RoleRange{
	"segmented": {
		{Role: Tracker, Min: 1, Max: 488},
		{Role: VertexTiming, Min: 489, Max: 536},
		{Role: Tracker, Min: 537, Max: 588},
		{Role: TimeOfFlight, Min: 589, Max: 606},
	},
	"planar": {
		{Role: Tracker, Min: 1, Max: 4},
		{Role: VertexTiming, Min: 5, Max: 8},
		{Role: Tracker, Min: 9, Max: 10},
		{Role: TimeOfFlight, Min: 11, Max: 11},
	},
}

// BuiltinLayout returns one of the layouts compiled into the module.
func BuiltinLayout(name string) (*DetectorClassifier, error) {
	ranges, ok := builtinLayouts[name]
	if !ok {
		return nil, fmt.Errorf("unknown detector layout %q", name)
	}
	return NewDetectorClassifier(name, ranges)
}
