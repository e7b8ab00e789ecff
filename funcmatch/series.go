// Package funcmatch selects the best-fitting candidate curve for each of four
// measured series by least squares, and classifies independent observations
// against the chosen curves using a sqrt(2)-scaled deviation threshold.
package funcmatch

import "fmt"

// MeasuredSeriesCount is the number of measured series sharing one grid.
const MeasuredSeriesCount = 4

// MeasuredSeries is one of the four observed y sequences sampled on the shared
// grid.
type MeasuredSeries struct {
	Name string // column label in the source data, e.g. "y1"
	Y    []float64
}

// Observation is an independent (x, y) pair to classify. Its x need not
// coincide exactly with a grid point.
type Observation struct {
	X float64
	Y float64
}

// Store holds the grid, the four measured series, and the candidate curve
// library. Candidate curves carry no x values of their own; they share the
// grid with the measured data, and that sharing is enforced here rather than
// assumed: every measured series and every candidate must have exactly one y
// value per grid point.
type Store struct {
	Grid       Grid
	Measured   [MeasuredSeriesCount]MeasuredSeries
	Candidates [][]float64
}

// NewStore validates all shape invariants up front and returns an immutable
// store. It fails with an EmptyInputError when the grid or the candidate
// library is empty, and with a ShapeError when any series or candidate
// disagrees with the grid length.
func NewStore(grid Grid, measured [MeasuredSeriesCount]MeasuredSeries, candidates [][]float64) (*Store, error) {
	if len(grid) == 0 {
		return nil, EmptyInputError{What: "grid"}
	}
	if len(candidates) == 0 {
		return nil, EmptyInputError{What: "candidate curves"}
	}

	for i, m := range measured {
		if len(m.Y) != len(grid) {
			return nil, ShapeError{What: fmt.Sprintf("measured series %q (#%d)", m.Name, i), Got: len(m.Y), Want: len(grid)}
		}
	}

	for i, c := range candidates {
		if len(c) != len(grid) {
			return nil, ShapeError{What: fmt.Sprintf("candidate curve %d", i), Got: len(c), Want: len(grid)}
		}
	}

	return &Store{Grid: grid, Measured: measured, Candidates: candidates}, nil
}
