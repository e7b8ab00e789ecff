// Package dataload reads the three CSV inputs (measured training series,
// ideal function library, test observations) and builds the in-memory store
// consumed by funcmatch. All schema and shape validation happens here, before
// any selection work begins.
package dataload

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/csimplestring/go-csv/detector"
	"github.com/gocarina/gocsv"

	"github.com/idealfit/idealfit/funcmatch"
)

// determineDelimiter sniffs the most likely delimiter rune for a CSV-like
// file, defaulting to a comma when detection is inconclusive.
func determineDelimiter(r io.Reader) rune {
	candidates := detector.New().DetectDelimiter(r, '"')
	if len(candidates) == 0 {
		return ','
	}

	return rune(candidates[0][0])
}

type trainingRow struct {
	X  float64 `csv:"x"`
	Y1 float64 `csv:"y1"`
	Y2 float64 `csv:"y2"`
	Y3 float64 `csv:"y3"`
	Y4 float64 `csv:"y4"`
}

type observationRow struct {
	X float64 `csv:"x"`
	Y float64 `csv:"y"`
}

// unmarshalCSV sniffs the file's delimiter, verifies that every required
// column is present in the header, and parses the file into out, which must
// be a pointer to a slice of gocsv-tagged structs. The header check has to
// happen here: gocsv leaves struct fields whose column is absent at their
// zero value, and a fabricated all-zero series must never reach selection.
func unmarshalCSV(path string, required []string, out interface{}) error {
	fileBytes, err := os.ReadFile(path)
	if err != nil {
		return pfx.Err(err)
	}

	delim := determineDelimiter(bytes.NewReader(fileBytes))

	if err := checkRequiredColumns(fileBytes, delim, required); err != nil {
		return pfx.Err(fmt.Errorf("%s: %v", path, err))
	}

	r := csv.NewReader(bytes.NewReader(fileBytes))
	r.Comma = delim
	r.LazyQuotes = true

	if err := gocsv.UnmarshalCSV(r, out); err != nil {
		return pfx.Err(fmt.Errorf("%s: %v", path, err))
	}

	return nil
}

// checkRequiredColumns reads just the header row and fails if any required
// column name is missing from it.
func checkRequiredColumns(fileBytes []byte, delim rune, required []string) error {
	r := csv.NewReader(bytes.NewReader(fileBytes))
	r.Comma = delim
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return err
	}

	have := make(map[string]struct{}, len(header))
	for _, name := range header {
		have[strings.TrimSpace(name)] = struct{}{}
	}

	for _, want := range required {
		if _, ok := have[want]; !ok {
			return fmt.Errorf("missing required column %q", want)
		}
	}

	return nil
}

// Training reads a train.csv with columns x, y1, y2, y3, y4 and returns the
// shared grid plus the four measured series sampled on it.
func Training(path string) (funcmatch.Grid, [funcmatch.MeasuredSeriesCount]funcmatch.MeasuredSeries, error) {
	var measured [funcmatch.MeasuredSeriesCount]funcmatch.MeasuredSeries

	rows := []*trainingRow{}
	if err := unmarshalCSV(path, []string{"x", "y1", "y2", "y3", "y4"}, &rows); err != nil {
		return nil, measured, err
	}

	xs := make([]float64, len(rows))
	ys := [funcmatch.MeasuredSeriesCount][]float64{}
	for i := range ys {
		ys[i] = make([]float64, len(rows))
	}

	for i, row := range rows {
		xs[i] = row.X
		ys[0][i] = row.Y1
		ys[1][i] = row.Y2
		ys[2][i] = row.Y3
		ys[3][i] = row.Y4
	}

	grid, err := funcmatch.NewGrid(xs)
	if err != nil {
		return nil, measured, pfx.Err(fmt.Errorf("%s: %v", path, err))
	}

	for i := range measured {
		measured[i] = funcmatch.MeasuredSeries{Name: fmt.Sprintf("y%d", i+1), Y: ys[i]}
	}

	return grid, measured, nil
}

// IdealFunctions reads an ideal.csv whose header is x followed by y1..yN and
// returns the N candidate curves, one y slice per curve. The file's x column
// must agree with the measured grid row for row; candidate curves do not
// carry their own grid, and that sharing is verified here rather than
// assumed.
func IdealFunctions(path string, grid funcmatch.Grid) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer f.Close()

	fileBytes, err := io.ReadAll(f)
	if err != nil {
		return nil, pfx.Err(err)
	}

	r := csv.NewReader(bytes.NewReader(fileBytes))
	r.Comma = determineDelimiter(bytes.NewReader(fileBytes))
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %v", path, err))
	}

	if err := checkIdealHeader(header); err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %v", path, err))
	}

	nCandidates := len(header) - 1
	candidates := make([][]float64, nCandidates)
	for i := range candidates {
		candidates[i] = make([]float64, 0, len(grid))
	}

	row := 0
	for ; ; row++ {
		cols, err := r.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s: %v", path, err))
		}

		if row >= len(grid) {
			return nil, pfx.Err(fmt.Errorf("%s has more rows than the %d-point measured grid", path, len(grid)))
		}

		vals, err := parseFloats(cols)
		if err != nil {
			return nil, pfx.Err(fmt.Errorf("%s row %d: %v", path, row+1, err))
		}

		if vals[0] != grid[row] {
			return nil, pfx.Err(fmt.Errorf("%s row %d: x=%g does not match the measured grid x=%g", path, row+1, vals[0], grid[row]))
		}

		for c := 0; c < nCandidates; c++ {
			candidates[c] = append(candidates[c], vals[c+1])
		}
	}

	if row != len(grid) {
		return nil, pfx.Err(fmt.Errorf("%s has %d rows, want %d to match the measured grid", path, row, len(grid)))
	}

	return candidates, nil
}

// checkIdealHeader requires the column layout x, y1, y2, ..., yN.
func checkIdealHeader(header []string) error {
	if len(header) < 2 {
		return fmt.Errorf("expected at least an x column and one y column, got %d columns", len(header))
	}

	if header[0] != "x" {
		return fmt.Errorf("first column is %q, want \"x\"", header[0])
	}

	for i, name := range header[1:] {
		if want := fmt.Sprintf("y%d", i+1); name != want {
			return fmt.Errorf("column %d is %q, want %q", i+1, name, want)
		}
	}

	return nil
}

// TestObservations reads a test.csv with columns x, y. Observations are
// returned in file order; their x values are not required to lie on the grid.
func TestObservations(path string) ([]funcmatch.Observation, error) {
	rows := []*observationRow{}
	if err := unmarshalCSV(path, []string{"x", "y"}, &rows); err != nil {
		return nil, err
	}

	out := make([]funcmatch.Observation, len(rows))
	for i, row := range rows {
		out[i] = funcmatch.Observation{X: row.X, Y: row.Y}
	}

	return out, nil
}

func parseFloats(cols []string) ([]float64, error) {
	out := make([]float64, len(cols))

	for i, col := range cols {
		v, err := strconv.ParseFloat(strings.TrimSpace(col), 64)
		if err != nil {
			return nil, fmt.Errorf("column %d: %v", i+1, err)
		}
		out[i] = v
	}

	return out, nil
}
