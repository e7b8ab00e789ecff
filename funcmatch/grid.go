package funcmatch

import (
	"fmt"
	"sort"
)

// Grid is the shared, strictly increasing sequence of x coordinates common to
// all four measured series and, implicitly, to every candidate curve. It is
// stored once and referenced by both, never duplicated per curve.
type Grid []float64

// NewGrid copies xs into a Grid after checking that it is nonempty and
// strictly increasing.
func NewGrid(xs []float64) (Grid, error) {
	if len(xs) == 0 {
		return nil, EmptyInputError{What: "grid"}
	}

	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, fmt.Errorf("funcmatch: grid x values must be strictly increasing, but x[%d]=%g is followed by x[%d]=%g", i-1, xs[i-1], i, xs[i])
		}
	}

	out := make(Grid, len(xs))
	copy(out, xs)

	return out, nil
}

// NearestIndex returns the index of the grid point closest to x. The second
// return value is false when x lies outside the grid's coverage; out-of-range
// points are never clamped or interpolated. When x is exactly between two grid
// points, the lower index wins.
func (g Grid) NearestIndex(x float64) (int, bool) {
	if len(g) == 0 || x < g[0] || x > g[len(g)-1] {
		return 0, false
	}

	i := sort.SearchFloat64s(g, x)
	if i == 0 {
		return 0, true
	}

	if g[i]-x < x-g[i-1] {
		return i, true
	}

	return i - 1, true
}
