// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/danielhkuo/movie-night/cliparse"
	"github.com/danielhkuo/movie-night/handlers"
	"github.com/danielhkuo/movie-night/middleware"
	"github.com/danielhkuo/movie-night/voting"
)

// wrap applies the standard per-route middleware chain
func wrap(h http.HandlerFunc) http.HandlerFunc {
	return middleware.WithLogging(middleware.WithMetrics(h))
}

func NewRouter(svc *voting.Service, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(svc)
	votingHandler := handlers.NewVotingHandler(svc)
	resultsHandler := handlers.NewResultsHandler(svc)
	adminHandler := handlers.NewAdminHandler(svc, cfg)

	// Health and metrics
	mux.HandleFunc("GET /health", adminHandler.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Vote submission and results
	mux.HandleFunc("POST /votes", wrap(votingHandler.SubmitVotes))
	mux.HandleFunc("GET /results", wrap(resultsHandler.GetResults))

	// Session management
	mux.HandleFunc("POST /sessions", wrap(sessionHandler.CreateSession))
	mux.HandleFunc("GET /sessions/{id}", wrap(sessionHandler.GetSession))
	mux.HandleFunc("POST /sessions/{id}/close", wrap(sessionHandler.CloseSession))
	mux.HandleFunc("POST /sessions/{id}/movies", wrap(sessionHandler.AddMovie))
	mux.HandleFunc("GET /sessions/{id}/my-votes", wrap(votingHandler.GetMyVotes))
	mux.HandleFunc("GET /sessions/{id}/results", wrap(resultsHandler.GetSessionResults))

	// Maintenance (requires X-Admin-Key)
	mux.HandleFunc("DELETE /admin/votes", wrap(adminHandler.DeleteAllVotes))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("movie-night API v1"))
	})

	return mux
}
