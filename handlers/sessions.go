// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/movie-night/middleware"
	"github.com/danielhkuo/movie-night/models"
	"github.com/danielhkuo/movie-night/voting"
)

type SessionHandler struct {
	svc *voting.Service
}

func NewSessionHandler(svc *voting.Service) *SessionHandler {
	return &SessionHandler{svc: svc}
}

// CreateSession handles POST /sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	ident, ok := identityFrom(w, r, "")
	if !ok {
		return
	}

	session, err := h.svc.CreateSession(r.Context(), ident, req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, session)
}

// GetSession handles GET /sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.svc.GetSession(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, session)
}

// CloseSession handles POST /sessions/{id}/close
// Host only; closed sessions stop accepting slates
func (h *SessionHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	ident, ok := identityFrom(w, r, "")
	if !ok {
		return
	}

	session, err := h.svc.CloseSession(r.Context(), ident, r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CloseSessionResponse{
		ClosedAt: *session.ClosedAt,
	})
}

// AddMovie handles POST /sessions/{id}/movies
func (h *SessionHandler) AddMovie(w http.ResponseWriter, r *http.Request) {
	var req models.AddMovieRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		invalidJSON(w)
		return
	}

	ident, ok := identityFrom(w, r, "")
	if !ok {
		return
	}

	movie, err := h.svc.AddMovie(r.Context(), ident, r.PathValue("id"), req)
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, movie)
}
