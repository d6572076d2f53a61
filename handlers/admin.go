// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/danielhkuo/movie-night/auth"
	"github.com/danielhkuo/movie-night/cliparse"
	"github.com/danielhkuo/movie-night/middleware"
	"github.com/danielhkuo/movie-night/models"
	"github.com/danielhkuo/movie-night/voting"
)

type AdminHandler struct {
	svc *voting.Service
	cfg cliparse.Config
}

func NewAdminHandler(svc *voting.Service, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{svc: svc, cfg: cfg}
}

// DeleteAllVotes handles DELETE /admin/votes
// Destructive maintenance; requires X-Admin-Key
func (h *AdminHandler) DeleteAllVotes(w http.ResponseWriter, r *http.Request) {
	if err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), h.cfg.AdminKey); err != nil {
		middleware.KindErrorResponse(w, http.StatusUnauthorized, voting.ErrAuth.Error(), "Invalid admin key")
		return
	}

	deleted, err := h.svc.DeleteAllVotes(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DeleteVotesResponse{Deleted: deleted})
}

// Health handles GET /health
func (h *AdminHandler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Ping(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
