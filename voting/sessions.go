// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/danielhkuo/movie-night/auth"
	"github.com/danielhkuo/movie-night/models"
	"github.com/danielhkuo/movie-night/store"
	"github.com/danielhkuo/movie-night/validation"
)

// CreateSession opens a new session hosted by the caller
func (s *Service) CreateSession(ctx context.Context, ident Identity, req models.CreateSessionRequest) (models.Session, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := validation.Struct(req); err != nil {
		return models.Session{}, &Error{Kind: ErrValidation, Message: err.Error(), Err: err}
	}
	hostID, err := s.resolve(ident, bearerRequired)
	if err != nil {
		return models.Session{}, err
	}

	id, err := auth.GenerateID()
	if err != nil {
		return models.Session{}, storageError("id generation", err)
	}
	session := models.Session{
		ID:        id,
		Name:      req.Name,
		HostID:    hostID,
		Status:    models.StatusOpen,
		CreatedAt: s.now(),
	}

	err = s.call(ctx, "create_session", func(ctx context.Context) error {
		return s.store.CreateSession(ctx, session)
	})
	if err != nil {
		slog.Error("failed to create session", "error", err)
		return models.Session{}, storageError("session create", err)
	}

	slog.Info("session created", "session_id", session.ID, "host_id", hostID)
	return session, nil
}

// GetSession returns a session and its movies in tally order
func (s *Service) GetSession(ctx context.Context, sessionID string) (models.SessionWithMovies, error) {
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return models.SessionWithMovies{}, err
	}
	movies, err := s.listMovies(ctx, sessionID)
	if err != nil {
		return models.SessionWithMovies{}, err
	}
	return models.SessionWithMovies{Session: session, Movies: movies}, nil
}

// CloseSession stops a session from accepting slates. Only the host may close it.
func (s *Service) CloseSession(ctx context.Context, ident Identity, sessionID string) (models.Session, error) {
	callerID, err := s.resolve(ident, bearerRequired)
	if err != nil {
		return models.Session{}, err
	}
	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return models.Session{}, err
	}
	if session.HostID != callerID {
		return models.Session{}, authError("only the host can close this session", nil)
	}
	if session.Status == models.StatusClosed {
		return models.Session{}, conflictError("session %s is already closed", sessionID)
	}

	closedAt := s.now()
	err = s.call(ctx, "close_session", func(ctx context.Context) error {
		return s.store.CloseSession(ctx, sessionID, closedAt)
	})
	if errors.Is(err, store.ErrNotFound) {
		return models.Session{}, notFoundError("session %s not found", sessionID)
	}
	if err != nil {
		slog.Error("failed to close session", "error", err, "session_id", sessionID)
		return models.Session{}, storageError("session close", err)
	}

	session.Status = models.StatusClosed
	session.ClosedAt = &closedAt
	slog.Info("session closed", "session_id", sessionID)
	return session, nil
}

// AddMovie adds a candidate to an open session. Any authenticated participant may add.
func (s *Service) AddMovie(ctx context.Context, ident Identity, sessionID string, req models.AddMovieRequest) (models.Movie, error) {
	req.Title = strings.TrimSpace(req.Title)
	if err := validation.Struct(req); err != nil {
		return models.Movie{}, &Error{Kind: ErrValidation, Message: err.Error(), Err: err}
	}
	if _, err := s.resolve(ident, bearerRequired); err != nil {
		return models.Movie{}, err
	}

	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return models.Movie{}, err
	}
	if session.Status != models.StatusOpen {
		return models.Movie{}, conflictError("session %s is closed", sessionID)
	}

	id, err := auth.GenerateID()
	if err != nil {
		return models.Movie{}, storageError("id generation", err)
	}
	movie := models.Movie{
		ID:        id,
		SessionID: sessionID,
		Title:     req.Title,
		Poster:    req.Poster,
		Year:      req.Year,
		Director:  req.Director,
		Genre:     req.Genre,
		Rating:    req.Rating,
		CreatedAt: s.now(),
	}

	err = s.call(ctx, "add_movie", func(ctx context.Context) error {
		return s.store.AddMovie(ctx, movie)
	})
	if err != nil {
		slog.Error("failed to add movie", "error", err, "session_id", sessionID)
		return models.Movie{}, storageError("movie insert", err)
	}

	slog.Info("movie added", "session_id", sessionID, "movie_id", movie.ID)
	return movie, nil
}

// UserVotes returns the caller's current slate for a session, best rank first
func (s *Service) UserVotes(ctx context.Context, ident Identity, sessionID string) ([]models.Vote, error) {
	userID, err := s.resolve(ident, identityRequired)
	if err != nil {
		return nil, err
	}
	if _, err := s.getSession(ctx, sessionID); err != nil {
		return nil, err
	}

	var votes []models.Vote
	err = s.call(ctx, "list_user_votes", func(ctx context.Context) error {
		var err error
		votes, err = s.store.ListUserVotes(ctx, sessionID, userID)
		return err
	})
	if err != nil {
		return nil, storageError("vote lookup", err)
	}
	return votes, nil
}

// DeleteAllVotes wipes every vote in every session. Maintenance only.
func (s *Service) DeleteAllVotes(ctx context.Context) (int64, error) {
	var deleted int64
	err := s.call(ctx, "delete_all_votes", func(ctx context.Context) error {
		var err error
		deleted, err = s.store.DeleteAllVotes(ctx)
		return err
	})
	if err != nil {
		slog.Error("failed to delete votes", "error", err)
		return 0, storageError("vote delete", err)
	}
	slog.Warn("all votes deleted", "count", deleted)
	return deleted, nil
}

// Ping checks the store is reachable
func (s *Service) Ping(ctx context.Context) error {
	err := s.call(ctx, "ping", s.store.Ping)
	if err != nil {
		return storageError("ping", err)
	}
	return nil
}
