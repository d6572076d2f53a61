// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/movie-night/auth"
	"github.com/danielhkuo/movie-night/middleware"
	"github.com/danielhkuo/movie-night/voting"
)

// statusFor maps a voting error kind to an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, voting.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, voting.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, voting.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, voting.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError sends err as {error, kind, message}. Causes are logged, never sent.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err, "method", r.Method, "path", r.URL.Path)
	}
	middleware.KindErrorResponse(w, status, voting.KindOf(err), voting.MessageOf(err))
}

func invalidJSON(w http.ResponseWriter) {
	middleware.KindErrorResponse(w, http.StatusBadRequest, voting.ErrValidation.Error(), "Invalid JSON")
}

// identityFrom collects the caller's bearer token and an optional plain user ID.
// A malformed Authorization header is rejected here; ok is false once the 401 is written.
func identityFrom(w http.ResponseWriter, r *http.Request, userID string) (voting.Identity, bool) {
	token, err := auth.BearerToken(r)
	if errors.Is(err, auth.ErrInvalidToken) {
		middleware.KindErrorResponse(w, http.StatusUnauthorized, voting.ErrAuth.Error(), "malformed Authorization header")
		return voting.Identity{}, false
	}
	return voting.Identity{Token: token, UserID: userID}, true
}
