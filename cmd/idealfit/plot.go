package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/carbocation/pfx"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/idealfit/idealfit/funcmatch"
)

func plotAll(dir string, store *funcmatch.Store, recs [funcmatch.MeasuredSeriesCount]funcmatch.SelectionRecord, obs []funcmatch.Observation, outcomes []funcmatch.Outcome) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return pfx.Err(err)
	}

	for _, rec := range recs {
		if err := plotSeriesFit(dir, store, rec); err != nil {
			return err
		}
	}

	return plotAssignments(dir, obs, outcomes)
}

// plotSeriesFit renders one measured series as dots with its chosen ideal
// function drawn through it as a line.
func plotSeriesFit(dir string, store *funcmatch.Store, rec funcmatch.SelectionRecord) error {
	name := store.Measured[rec.Series].Name

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    fmt.Sprintf("ideal y%d", rec.Candidate+1),
				XValues: store.Grid,
				YValues: store.Candidates[rec.Candidate],
			},
			chart.ContinuousSeries{
				Name: "measured " + name,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    2,
					DotColor:    chart.ColorBlue,
				},
				XValues: store.Grid,
				YValues: store.Measured[rec.Series].Y,
			},
		},
	}

	return renderPNG(graph, filepath.Join(dir, fmt.Sprintf("training_%s.png", name)))
}

// plotAssignments renders the test observations, assigned in blue and
// unassigned in red.
func plotAssignments(dir string, obs []funcmatch.Observation, outcomes []funcmatch.Outcome) error {
	var ax, ay, ux, uy []float64

	for i, o := range obs {
		if outcomes[i].Assigned {
			ax = append(ax, o.X)
			ay = append(ay, o.Y)
		} else {
			ux = append(ux, o.X)
			uy = append(uy, o.Y)
		}
	}

	series := make([]chart.Series, 0, 2)
	if len(ax) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name: "assigned",
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    4,
				DotColor:    chart.ColorBlue,
			},
			XValues: ax,
			YValues: ay,
		})
	}
	if len(ux) > 0 {
		series = append(series, chart.ContinuousSeries{
			Name: "unassigned",
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    4,
				DotColor:    chart.ColorRed,
			},
			XValues: ux,
			YValues: uy,
		})
	}

	if len(series) == 0 {
		return nil
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		Series: series,
	}

	return renderPNG(graph, filepath.Join(dir, "test_assignments.png"))
}

func renderPNG(graph chart.Chart, filename string) error {
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return pfx.Err(err)
	}

	outFile, err := os.Create(filename)
	if err != nil {
		return pfx.Err(err)
	}
	defer outFile.Close()

	if _, err := buffer.WriteTo(outFile); err != nil {
		return pfx.Err(err)
	}

	return nil
}
