package funcmatch

import (
	"fmt"
	"math"
)

// SelectionRecord is the result of scoring one measured series against the
// full candidate library.
type SelectionRecord struct {
	Series        int       // measured series this record belongs to, 0-3
	Candidate     int       // chosen candidate curve, 0-based
	SumSquaredDev float64   // sum of squared deviations of the chosen candidate
	MaxDev        float64   // largest per-point absolute deviation of the chosen candidate
	Deviations    []float64 // per-point absolute deviations of the chosen candidate
}

// SelectBest scores every candidate curve against the measured series by sum
// of squared deviations and returns a record for the candidate with the
// smallest sum. Candidates are scanned in ascending index order and an exact
// tie keeps the earlier candidate, so the result is deterministic: the lowest
// index wins.
//
// Every candidate must have the same length as the measured series; any
// mismatch fails with a ShapeError before any candidate is scored.
func SelectBest(measured []float64, candidates [][]float64) (SelectionRecord, error) {
	if len(measured) == 0 {
		return SelectionRecord{}, EmptyInputError{What: "measured series"}
	}
	if len(candidates) == 0 {
		return SelectionRecord{}, EmptyInputError{What: "candidate curves"}
	}

	for i, c := range candidates {
		if len(c) != len(measured) {
			return SelectionRecord{}, ShapeError{What: fmt.Sprintf("candidate curve %d", i), Got: len(c), Want: len(measured)}
		}
	}

	best := SelectionRecord{Candidate: -1, SumSquaredDev: math.Inf(1)}
	for i, c := range candidates {
		ssd := 0.0
		for j, y := range measured {
			d := y - c[j]
			ssd += d * d
		}

		if ssd < best.SumSquaredDev {
			best.Candidate = i
			best.SumSquaredDev = ssd
		}
	}

	chosen := candidates[best.Candidate]
	best.Deviations = make([]float64, len(measured))
	for j, y := range measured {
		d := math.Abs(y - chosen[j])
		best.Deviations[j] = d
		if d > best.MaxDev {
			best.MaxDev = d
		}
	}

	return best, nil
}

// SelectAll runs SelectBest for each of the four measured series in the
// store. The returned array is indexed by measured series, so the record for
// series i is always at position i regardless of which candidate it chose.
func (s *Store) SelectAll() ([MeasuredSeriesCount]SelectionRecord, error) {
	var out [MeasuredSeriesCount]SelectionRecord

	for i, m := range s.Measured {
		rec, err := SelectBest(m.Y, s.Candidates)
		if err != nil {
			return out, err
		}
		rec.Series = i
		out[i] = rec
	}

	return out, nil
}
