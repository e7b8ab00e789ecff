package funcmatch

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestSelectBestExactMatch(t *testing.T) {
	measured := []float64{1.0, 2.0}
	candidates := [][]float64{
		{1.0, 2.0},
		{5.0, 6.0},
	}

	rec, err := SelectBest(measured, candidates)
	if err != nil {
		t.Fatal(err)
	}

	if rec.Candidate != 0 {
		t.Errorf("Chose candidate %d, want 0", rec.Candidate)
	}
	if rec.SumSquaredDev != 0.0 {
		t.Errorf("SumSquaredDev = %g, want 0", rec.SumSquaredDev)
	}
	if rec.MaxDev != 0.0 {
		t.Errorf("MaxDev = %g, want 0", rec.MaxDev)
	}
}

func TestSelectBestTieBreakLowestIndex(t *testing.T) {
	measured := []float64{3.0, 4.0}

	// Candidates 3 and 7 both match exactly; the scan must keep index 3.
	candidates := make([][]float64, 10)
	for i := range candidates {
		candidates[i] = []float64{100.0 + float64(i), 200.0}
	}
	candidates[3] = []float64{3.0, 4.0}
	candidates[7] = []float64{3.0, 4.0}

	rec, err := SelectBest(measured, candidates)
	if err != nil {
		t.Fatal(err)
	}

	if rec.Candidate != 3 {
		t.Errorf("Chose candidate %d, want 3", rec.Candidate)
	}
}

func TestSelectBestShapeErrorBeforeScoring(t *testing.T) {
	measured := make([]float64, 400)
	candidates := make([][]float64, 50)
	for i := range candidates {
		candidates[i] = make([]float64, 400)
	}
	candidates[49] = make([]float64, 399)

	_, err := SelectBest(measured, candidates)

	var shapeErr ShapeError
	if !errors.As(err, &shapeErr) {
		t.Fatalf("Expected a ShapeError, got %v", err)
	}
	if shapeErr.Got != 399 || shapeErr.Want != 400 {
		t.Errorf("ShapeError = %+v, want Got=399 Want=400", shapeErr)
	}
}

func TestSelectBestEmptyInputs(t *testing.T) {
	var emptyErr EmptyInputError

	if _, err := SelectBest(nil, [][]float64{{1}}); !errors.As(err, &emptyErr) {
		t.Errorf("Empty measured series: expected an EmptyInputError, got %v", err)
	}

	if _, err := SelectBest([]float64{1}, nil); !errors.As(err, &emptyErr) {
		t.Errorf("Empty candidate library: expected an EmptyInputError, got %v", err)
	}
}

func TestSelectBestDeviations(t *testing.T) {
	measured := []float64{1.0, 5.0, 2.0}
	candidates := [][]float64{
		{1.5, 4.0, 2.0},
		{9.0, 9.0, 9.0},
	}

	rec, err := SelectBest(measured, candidates)
	if err != nil {
		t.Fatal(err)
	}

	wantDevs := []float64{0.5, 1.0, 0.0}
	if !reflect.DeepEqual(rec.Deviations, wantDevs) {
		t.Errorf("Deviations = %v, want %v", rec.Deviations, wantDevs)
	}
	if rec.MaxDev != 1.0 {
		t.Errorf("MaxDev = %g, want 1", rec.MaxDev)
	}
}

// synthStore builds a deterministic store with 4 measured series, 50
// candidates, and a 400-point grid, loosely shaped like the real input data.
func synthStore(t *testing.T) *Store {
	t.Helper()

	const n = 400
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = -20.0 + 0.1*float64(i)
	}

	grid, err := NewGrid(xs)
	if err != nil {
		t.Fatal(err)
	}

	candidates := make([][]float64, 50)
	for c := range candidates {
		candidates[c] = make([]float64, n)
		for i, x := range xs {
			candidates[c][i] = math.Sin(x*float64(c+1)*0.1) + float64(c)*0.25
		}
	}

	var measured [MeasuredSeriesCount]MeasuredSeries
	for s := range measured {
		ys := make([]float64, n)
		source := candidates[s*11]
		for i := range ys {
			// A repeatable wobble around one of the candidates.
			ys[i] = source[i] + 0.05*math.Cos(float64(i)*0.7+float64(s))
		}
		measured[s] = MeasuredSeries{Name: "y" + string(rune('1'+s)), Y: ys}
	}

	store, err := NewStore(grid, measured, candidates)
	if err != nil {
		t.Fatal(err)
	}

	return store
}

func TestSelectAllOptimality(t *testing.T) {
	store := synthStore(t)

	recs, err := store.SelectAll()
	if err != nil {
		t.Fatal(err)
	}

	// Brute-force recomputation: no candidate may beat the chosen one.
	for s, rec := range recs {
		if rec.Series != s {
			t.Errorf("Record %d carries Series=%d", s, rec.Series)
		}

		for c, candidate := range store.Candidates {
			ssd := 0.0
			for i, y := range store.Measured[s].Y {
				d := y - candidate[i]
				ssd += d * d
			}

			if ssd < rec.SumSquaredDev {
				t.Errorf("Series %d: candidate %d has SSD %g, beating chosen candidate %d with SSD %g",
					s, c, ssd, rec.Candidate, rec.SumSquaredDev)
			}
		}
	}
}

func TestSelectAllDeterminism(t *testing.T) {
	store := synthStore(t)

	first, err := store.SelectAll()
	if err != nil {
		t.Fatal(err)
	}

	second, err := store.SelectAll()
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Two runs over identical inputs disagree:\n%+v\n%+v", first, second)
	}
}
