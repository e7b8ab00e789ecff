// idealweb serves a read-only view of idealfit results: the four selected
// ideal functions, the classified test observations, and any charts rendered
// by the pipeline.
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/idealfit/idealfit/resultsdb"
)

var global *Global

func main() {
	dbFile := flag.String("db", "idealfunctions.db", "Path to the SQLite database written by idealfit")
	plotDir := flag.String("plotdir", "", "(Optional) Directory containing PNG charts rendered by idealfit")
	port := flag.Int("port", 9019, "Port for HTTP server")
	flag.Parse()

	if *dbFile == "" {
		flag.PrintDefaults()
		return
	}

	db, err := resultsdb.Open(*dbFile)
	if err != nil {
		log.Fatalln(err)
	}
	defer db.Close()

	global = &Global{
		log:     log.New(os.Stderr, log.Prefix(), log.Ldate|log.Ltime),
		db:      db,
		Site:    "idealfit",
		PlotDir: *plotDir,
	}

	handler, err := router(global)
	if err != nil {
		log.Fatalln(err)
	}

	global.log.Println("Launching", global.Site, "viewer on port", *port)

	log.Fatalln(http.ListenAndServe(fmt.Sprintf(":%d", *port), handler))
}
