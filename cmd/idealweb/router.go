package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/interpose/middleware"
	"github.com/justinas/alice"
)

func router(config *Global) (http.Handler, error) {
	router := mux.NewRouter()
	GET := router.Methods("GET", "HEAD").Subrouter()

	h := handler{Global: config}

	GET.HandleFunc("/", h.Index).Name("index")

	if config.PlotDir != "" {
		GET.PathPrefix("/plots/").Handler(
			http.StripPrefix("/plots/", http.FileServer(http.Dir(config.PlotDir))))
	}

	standard := alice.New(
		// Log all requests to STDOUT
		middleware.GorillaLog(),
	)

	return standard.Then(router), nil
}
