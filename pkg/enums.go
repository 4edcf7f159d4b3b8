package reco

import "fmt"

type DetectorRole int

const (
	Unclassified DetectorRole = iota
	Tracker
	VertexTiming
	TimeOfFlight
)

var detectorRoleStrings = []string{
	"unclassified",
	"tracker",
	"vertex-timing",
	"time-of-flight",
}

func (r DetectorRole) String() string {
	if r < Unclassified || r > TimeOfFlight {
		return "UNKNOWN"
	}
	return detectorRoleStrings[r]
}

func (r DetectorRole) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *DetectorRole) UnmarshalText(data []byte) error {
	s := string(data)
	for i, v := range detectorRoleStrings {
		if v == s {
			*r = DetectorRole(i)
			return nil
		}
	}
	return fmt.Errorf("invalid DetectorRole: %s", s)
}

// OutputMode selects the tables the writer produces.
type OutputMode int

const (
	OutputAcceptance OutputMode = iota
	OutputVectors
	OutputBoth
)

var outputModeStrings = []string{
	"acceptance",
	"vectors",
	"both",
}

func (m OutputMode) String() string {
	if m < OutputAcceptance || m > OutputBoth {
		return "UNKNOWN"
	}
	return outputModeStrings[m]
}

func (m OutputMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *OutputMode) UnmarshalText(data []byte) error {
	s := string(data)
	for i, v := range outputModeStrings {
		if v == s {
			*m = OutputMode(i)
			return nil
		}
	}
	return fmt.Errorf("invalid OutputMode: %s", s)
}

func (m OutputMode) writesAcceptance() bool {
	return m == OutputAcceptance || m == OutputBoth
}

func (m OutputMode) writesVectors() bool {
	return m == OutputVectors || m == OutputBoth
}
