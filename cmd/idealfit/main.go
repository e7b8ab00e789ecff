// idealfit selects the best-fitting ideal function for each of four measured
// training series by least squares, maps test observations onto the chosen
// functions using a sqrt(2)-scaled deviation threshold, persists everything
// to SQLite, and optionally renders summary charts.
package main

import (
	"flag"
	"log"

	"github.com/idealfit/idealfit/dataload"
	"github.com/idealfit/idealfit/funcmatch"
	"github.com/idealfit/idealfit/resultsdb"
)

func main() {
	var trainFile, idealFile, testFile, dbFile, plotDir string

	flag.StringVar(&trainFile, "train", "", "Path to the training CSV (columns x, y1, y2, y3, y4)")
	flag.StringVar(&idealFile, "ideal", "", "Path to the ideal function CSV (columns x, y1..y50)")
	flag.StringVar(&testFile, "test", "", "Path to the test observation CSV (columns x, y)")
	flag.StringVar(&dbFile, "db", "idealfunctions.db", "Path to the SQLite output database. Will be created if it does not yet exist.")
	flag.StringVar(&plotDir, "plotdir", "", "(Optional) Directory where PNG charts will be written. No charts are rendered if empty.")

	flag.Parse()

	if trainFile == "" {
		log.Fatalln("Please provide -train")
	}

	if idealFile == "" {
		log.Fatalln("Please provide -ideal")
	}

	if testFile == "" {
		log.Fatalln("Please provide -test")
	}

	log.Println("Launched idealfit")

	if err := runAll(trainFile, idealFile, testFile, dbFile, plotDir); err != nil {
		log.Fatalln(err)
	}
}

func runAll(trainFile, idealFile, testFile, dbFile, plotDir string) error {
	grid, measured, err := dataload.Training(trainFile)
	if err != nil {
		return err
	}
	log.Println("Loaded", len(grid), "grid points across", funcmatch.MeasuredSeriesCount, "measured series")

	candidates, err := dataload.IdealFunctions(idealFile, grid)
	if err != nil {
		return err
	}
	log.Println("Loaded", len(candidates), "ideal functions on the shared grid")

	obs, err := dataload.TestObservations(testFile)
	if err != nil {
		return err
	}
	log.Println("Loaded", len(obs), "test observations")

	store, err := funcmatch.NewStore(grid, measured, candidates)
	if err != nil {
		return err
	}

	flagOutlierPoints(store, 5.0)

	recs, err := store.SelectAll()
	if err != nil {
		return err
	}

	for _, rec := range recs {
		log.Printf("Series %s: chose ideal function %d (SSD %.4f, max deviation %.4f)\n",
			store.Measured[rec.Series].Name, rec.Candidate+1, rec.SumSquaredDev, rec.MaxDev)
	}

	outcomes := funcmatch.NewClassifier(store, recs).ClassifyAll(obs)

	db, err := resultsdb.Open(dbFile)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.SaveTraining(grid, measured); err != nil {
		return err
	}
	if err := db.SaveIdealFunctions(grid, candidates); err != nil {
		return err
	}
	if err := db.SaveSelections(recs); err != nil {
		return err
	}
	if err := db.SaveTestResults(obs, outcomes); err != nil {
		return err
	}
	log.Println("Saved results to", dbFile)

	if err := summarize(outcomes); err != nil {
		return err
	}

	if plotDir != "" {
		if err := plotAll(plotDir, store, recs, obs, outcomes); err != nil {
			return err
		}
		log.Println("Wrote charts to", plotDir)
	}

	return nil
}
