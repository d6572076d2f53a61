// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"time"

	"github.com/danielhkuo/movie-night/models"
)

var (
	// ErrNotFound is returned when a session or movie does not exist
	ErrNotFound = errors.New("not found")
	// ErrSessionClosed is returned by ReplaceSlate when the session no longer accepts votes
	ErrSessionClosed = errors.New("session closed")
)

// Store is the persistence boundary for sessions, movies and votes.
// Implementations must make ReplaceSlate atomic: readers observe either the
// voter's previous slate or the new one, never a partial mix. ReplaceSlate
// also rechecks inside its transaction that the session is still open.
type Store interface {
	CreateSession(ctx context.Context, s models.Session) error
	GetSession(ctx context.Context, id string) (models.Session, error)
	CloseSession(ctx context.Context, id string, closedAt time.Time) error

	AddMovie(ctx context.Context, m models.Movie) error
	// ListMovies returns a session's movies ordered by (created_at, id)
	ListMovies(ctx context.Context, sessionID string) ([]models.Movie, error)

	ListVotes(ctx context.Context, sessionID string) ([]models.Vote, error)
	ListUserVotes(ctx context.Context, sessionID, userID string) ([]models.Vote, error)
	ReplaceSlate(ctx context.Context, sessionID, userID string, votes []models.Vote) error
	DeleteAllVotes(ctx context.Context) (int64, error)

	Ping(ctx context.Context) error
	Close() error
}
