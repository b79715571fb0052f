// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/quickly-vote/election"
	"github.com/danielhkuo/quickly-vote/handlers"
	"github.com/danielhkuo/quickly-vote/middleware"
)

// NewRouter builds the read-only status API. store may be nil.
func NewRouter(e *election.Election, store handlers.SnapshotLoader) *http.ServeMux {
	mux := http.NewServeMux()

	resultsHandler := handlers.NewResultsHandler(e, store)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Election state (public, read-only)
	mux.HandleFunc("GET /options", middleware.WithLogging(resultsHandler.GetOptions))
	mux.HandleFunc("GET /results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /snapshots/{id}", middleware.WithLogging(resultsHandler.GetSnapshot))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-vote status API v1"))
	})

	return mux
}
