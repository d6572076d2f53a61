// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/movie-night/middleware"
	"github.com/danielhkuo/movie-night/voting"
)

type ResultsHandler struct {
	svc *voting.Service
}

func NewResultsHandler(svc *voting.Service) *ResultsHandler {
	return &ResultsHandler{svc: svc}
}

// GetResults handles GET /results?sessionId=...&userId=...
// Returns standings plus whether the caller has voted
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	ident, ok := identityFrom(w, r, query.Get("userId"))
	if !ok {
		return
	}

	view, err := h.svc.SessionView(r.Context(), ident, query.Get("sessionId"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}

// GetSessionResults handles GET /sessions/{id}/results
// Identity-agnostic standings, suitable for caching per session
func (h *ResultsHandler) GetSessionResults(w http.ResponseWriter, r *http.Request) {
	results, err := h.svc.ComputeResults(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, results)
}
