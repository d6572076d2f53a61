// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/movie-night/middleware"
	"github.com/danielhkuo/movie-night/models"
	"github.com/danielhkuo/movie-night/voting"
)

type VotingHandler struct {
	svc *voting.Service
}

func NewVotingHandler(svc *voting.Service) *VotingHandler {
	return &VotingHandler{svc: svc}
}

// SubmitVotes handles POST /votes
// Replaces the caller's whole slate for the session
func (h *VotingHandler) SubmitVotes(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitVotesRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	ident, ok := identityFrom(w, r, req.UserID)
	if !ok {
		return
	}

	votes, err := h.svc.SubmitSlate(r.Context(), ident, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVotesResponse{
		Success: true,
		Votes:   votes,
	})
}

// GetMyVotes handles GET /sessions/{id}/my-votes
func (h *VotingHandler) GetMyVotes(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(w, r, r.URL.Query().Get("userId"))
	if !ok {
		return
	}

	votes, err := h.svc.UserVotes(r.Context(), ident, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, votes)
}
