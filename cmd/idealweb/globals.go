package main

import (
	"github.com/idealfit/idealfit/resultsdb"
)

type Global struct {
	log logger
	db  *resultsdb.DB

	Site    string
	PlotDir string
}

type logger interface {
	Print(v ...interface{})
	Printf(format string, v ...interface{})
	Println(v ...interface{})
}
