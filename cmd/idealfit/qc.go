package main

import (
	"log"
	"math"

	"github.com/gonum/stat"

	"github.com/idealfit/idealfit/funcmatch"
)

// flagOutlierPoints warns about measured values lying more than sd standard
// deviations from their own series mean. Outliers are legal input; this is
// advisory only and never changes the selection.
func flagOutlierPoints(store *funcmatch.Store, sd float64) {
	for _, m := range store.Measured {
		mean := stat.Mean(m.Y, nil)
		stddev := stat.StdDev(m.Y, nil)
		if stddev == 0 {
			continue
		}

		flagged := 0
		for _, y := range m.Y {
			if math.Abs(y-mean) > sd*stddev {
				flagged++
			}
		}

		if flagged > 0 {
			log.Println("Series", m.Name, "has", flagged, "points beyond", sd, "standard deviations of its mean")
		}
	}
}
