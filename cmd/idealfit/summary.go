package main

import (
	"log"
	"os"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/pfx"
	"github.com/montanaflynn/stats"

	"github.com/idealfit/idealfit/funcmatch"
)

// summarize logs assignment counts and deviation statistics, and prints a
// terminal histogram of the assigned deviations.
func summarize(outcomes []funcmatch.Outcome) error {
	devs := make([]float64, 0, len(outcomes))
	overThreshold, outsideGrid := 0, 0

	for _, outcome := range outcomes {
		switch {
		case outcome.Assigned:
			devs = append(devs, outcome.Deviation)
		case outcome.Reason == funcmatch.ReasonOutsideGrid:
			outsideGrid++
		default:
			overThreshold++
		}
	}

	log.Println(len(devs), "of", len(outcomes), "test observations assigned;",
		overThreshold, "over threshold,", outsideGrid, "outside the grid")

	if len(devs) == 0 {
		return nil
	}

	mean, err := stats.Mean(devs)
	if err != nil {
		return pfx.Err(err)
	}

	median, err := stats.Median(devs)
	if err != nil {
		return pfx.Err(err)
	}

	stddev, err := stats.StandardDeviation(devs)
	if err != nil {
		return pfx.Err(err)
	}

	log.Printf("Assignment deviations: mean %.4f, median %.4f, stddev %.4f\n", mean, median, stddev)

	hist := histogram.Hist(10, devs)

	return pfx.Err(histogram.Fprint(os.Stdout, hist, histogram.Linear(40)))
}
