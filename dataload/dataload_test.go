package dataload

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name, contents string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestTraining(t *testing.T) {
	path := writeTemp(t, "train.csv", strings.Join([]string{
		"x,y1,y2,y3,y4",
		"-1.0,0.5,1.5,2.5,3.5",
		"0.0,0.6,1.6,2.6,3.6",
		"1.0,0.7,1.7,2.7,3.7",
	}, "\n"))

	grid, measured, err := Training(path)
	if err != nil {
		t.Fatal(err)
	}

	if want := []float64{-1, 0, 1}; !reflect.DeepEqual([]float64(grid), want) {
		t.Errorf("Grid = %v, want %v", grid, want)
	}

	if measured[0].Name != "y1" || measured[3].Name != "y4" {
		t.Errorf("Series names = %q..%q, want y1..y4", measured[0].Name, measured[3].Name)
	}

	if want := []float64{3.5, 3.6, 3.7}; !reflect.DeepEqual(measured[3].Y, want) {
		t.Errorf("Series y4 = %v, want %v", measured[3].Y, want)
	}
}

func TestTrainingTabDelimited(t *testing.T) {
	path := writeTemp(t, "train.tsv", strings.Join([]string{
		"x\ty1\ty2\ty3\ty4",
		"0.0\t1\t2\t3\t4",
		"1.0\t5\t6\t7\t8",
		"2.0\t9\t10\t11\t12",
		"3.0\t13\t14\t15\t16",
	}, "\n"))

	grid, measured, err := Training(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(grid) != 4 {
		t.Fatalf("Grid has %d points, want 4", len(grid))
	}

	if want := []float64{1, 5, 9, 13}; !reflect.DeepEqual(measured[0].Y, want) {
		t.Errorf("Series y1 = %v, want %v", measured[0].Y, want)
	}
}

func TestTrainingRejectsMissingColumn(t *testing.T) {
	// Without a header check, a file lacking y4 would load that series as
	// all zeros and flow straight into selection.
	path := writeTemp(t, "train.csv", strings.Join([]string{
		"x,y1,y2,y3",
		"0.0,1,2,3",
		"1.0,4,5,6",
	}, "\n"))

	if _, _, err := Training(path); err == nil {
		t.Error("A training file without the y4 column should be rejected, not loaded as zeros")
	}
}

func TestTestObservationsRejectMissingColumn(t *testing.T) {
	path := writeTemp(t, "test.csv", strings.Join([]string{
		"x",
		"1.0",
		"2.0",
	}, "\n"))

	if _, err := TestObservations(path); err == nil {
		t.Error("A test file without the y column should be rejected, not loaded as zeros")
	}
}

func TestTrainingRejectsUnsortedGrid(t *testing.T) {
	path := writeTemp(t, "train.csv", strings.Join([]string{
		"x,y1,y2,y3,y4",
		"1.0,0,0,0,0",
		"0.0,0,0,0,0",
	}, "\n"))

	if _, _, err := Training(path); err == nil {
		t.Error("Decreasing x values should be rejected at load time")
	}
}

func TestIdealFunctions(t *testing.T) {
	trainPath := writeTemp(t, "train.csv", strings.Join([]string{
		"x,y1,y2,y3,y4",
		"0.0,0,0,0,0",
		"1.0,0,0,0,0",
	}, "\n"))

	grid, _, err := Training(trainPath)
	if err != nil {
		t.Fatal(err)
	}

	idealPath := writeTemp(t, "ideal.csv", strings.Join([]string{
		"x,y1,y2,y3",
		"0.0,10,20,30",
		"1.0,11,21,31",
	}, "\n"))

	candidates, err := IdealFunctions(idealPath, grid)
	if err != nil {
		t.Fatal(err)
	}

	want := [][]float64{
		{10, 11},
		{20, 21},
		{30, 31},
	}
	if !reflect.DeepEqual(candidates, want) {
		t.Errorf("Candidates = %v, want %v", candidates, want)
	}
}

func TestIdealFunctionsValidation(t *testing.T) {
	trainPath := writeTemp(t, "train.csv", strings.Join([]string{
		"x,y1,y2,y3,y4",
		"0.0,0,0,0,0",
		"1.0,0,0,0,0",
	}, "\n"))

	grid, _, err := Training(trainPath)
	if err != nil {
		t.Fatal(err)
	}

	for _, v := range []struct {
		name     string
		contents string
	}{
		{
			"misaligned x",
			"x,y1\n0.0,1\n1.5,2\n",
		},
		{
			"too few rows",
			"x,y1\n0.0,1\n",
		},
		{
			"too many rows",
			"x,y1\n0.0,1\n1.0,2\n2.0,3\n",
		},
		{
			"bad header order",
			"x,y2,y1\n0.0,1,2\n1.0,3,4\n",
		},
		{
			"missing x column",
			"y1,y2\n1,2\n3,4\n",
		},
	} {
		path := writeTemp(t, "ideal.csv", v.contents)
		if _, err := IdealFunctions(path, grid); err == nil {
			t.Errorf("%s: expected an error", v.name)
		}
	}
}

func TestTestObservationsPreserveOrder(t *testing.T) {
	path := writeTemp(t, "test.csv", strings.Join([]string{
		"x,y",
		"17.5,34.161040",
		"0.3,1.215102",
		"-8.7,-16.843908",
	}, "\n"))

	obs, err := TestObservations(path)
	if err != nil {
		t.Fatal(err)
	}

	if len(obs) != 3 {
		t.Fatalf("Got %d observations, want 3", len(obs))
	}

	if obs[0].X != 17.5 || obs[2].X != -8.7 {
		t.Errorf("Observation order not preserved: %+v", obs)
	}
}
