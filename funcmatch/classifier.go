package funcmatch

import "math"

// ThresholdScale is the fixed factor applied to a series' maximum training
// deviation to obtain its acceptance threshold. It is not configurable per
// call.
const ThresholdScale = math.Sqrt2

// UnassignedReason records why an observation could not be assigned.
type UnassignedReason int

const (
	// ReasonNone is the zero value carried by assigned outcomes.
	ReasonNone UnassignedReason = iota

	// ReasonOverThreshold means the observation fell within grid coverage but
	// deviated beyond every series' acceptance threshold.
	ReasonOverThreshold

	// ReasonOutsideGrid means the observation's x fell outside the coverage
	// of the shared grid, so no grid point could be matched to it.
	ReasonOutsideGrid
)

func (r UnassignedReason) String() string {
	switch r {
	case ReasonNone:
		return "assigned"
	case ReasonOverThreshold:
		return "over_threshold"
	case ReasonOutsideGrid:
		return "outside_grid"
	}

	return "unknown"
}

// Outcome is the terminal classification result for one observation. Either
// Assigned is true and Candidate and Deviation are meaningful, or Assigned is
// false, Candidate is -1, and Reason says why. An observation is classified
// exactly once; outcomes are never revisited.
type Outcome struct {
	Assigned  bool
	Candidate int     // 0-based candidate index, -1 when unassigned
	Deviation float64 // absolute deviation at the matched grid point
	Reason    UnassignedReason
}

// Classifier tests observations against the chosen candidate curve of each of
// the four measured series.
type Classifier struct {
	grid       Grid
	candidates [][]float64
	selections [MeasuredSeriesCount]SelectionRecord
}

// NewClassifier builds a classifier from a validated store and the selection
// records produced by SelectAll over that same store.
func NewClassifier(store *Store, selections [MeasuredSeriesCount]SelectionRecord) *Classifier {
	return &Classifier{
		grid:       store.Grid,
		candidates: store.Candidates,
		selections: selections,
	}
}

// Classify tests the observation against the chosen candidate of all four
// measured series and assigns it to the qualifying candidate with the
// smallest deviation. A candidate qualifies when the observation's absolute
// deviation at the nearest grid point is at most MaxDev * ThresholdScale for
// that series, boundary inclusive. Series are visited in ascending order, so
// an exact deviation tie between two qualifying series resolves to the
// lower-numbered one.
func (c *Classifier) Classify(obs Observation) Outcome {
	idx, ok := c.grid.NearestIndex(obs.X)
	if !ok {
		return Outcome{Candidate: -1, Reason: ReasonOutsideGrid}
	}

	out := Outcome{Candidate: -1, Reason: ReasonOverThreshold}
	for _, sel := range c.selections {
		dev := math.Abs(obs.Y - c.candidates[sel.Candidate][idx])
		if dev > sel.MaxDev*ThresholdScale {
			continue
		}

		if !out.Assigned || dev < out.Deviation {
			out = Outcome{Assigned: true, Candidate: sel.Candidate, Deviation: dev}
		}
	}

	return out
}

// ClassifyAll classifies each observation independently, preserving input
// order. A failed grid lookup affects only its own observation.
func (c *Classifier) ClassifyAll(obs []Observation) []Outcome {
	out := make([]Outcome, len(obs))
	for i, o := range obs {
		out[i] = c.Classify(o)
	}

	return out
}
