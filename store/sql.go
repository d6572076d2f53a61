// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/danielhkuo/movie-night/models"
)

// SQL dialects understood by SQLStore
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

// SQLStore implements Store on database/sql.
// Queries use $N placeholders, which both lib/pq and modernc sqlite accept.
type SQLStore struct {
	db      *sql.DB
	dialect string
}

func NewSQLStore(db *sql.DB, dialect string) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

// DB exposes the underlying connection pool
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

func (s *SQLStore) CreateSession(ctx context.Context, session models.Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO movie_session (id, name, host_id, status, created_at, closed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, session.ID, session.Name, session.HostID, session.Status, session.CreatedAt, session.ClosedAt)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

func (s *SQLStore) GetSession(ctx context.Context, id string) (models.Session, error) {
	var session models.Session
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, host_id, status, created_at, closed_at
		FROM movie_session WHERE id = $1
	`, id).Scan(&session.ID, &session.Name, &session.HostID, &session.Status, &session.CreatedAt, &session.ClosedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrNotFound
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to query session: %w", err)
	}
	return session, nil
}

func (s *SQLStore) CloseSession(ctx context.Context, id string, closedAt time.Time) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE movie_session SET status = $1, closed_at = $2 WHERE id = $3
	`, models.StatusClosed, closedAt, id)
	if err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to close session: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) AddMovie(ctx context.Context, m models.Movie) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO movie (id, session_id, title, poster, year, director, genre, rating, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, m.ID, m.SessionID, m.Title, m.Poster, m.Year, m.Director, m.Genre, m.Rating, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert movie: %w", err)
	}
	return nil
}

func (s *SQLStore) ListMovies(ctx context.Context, sessionID string) ([]models.Movie, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, title, poster, year, director, genre, rating, created_at
		FROM movie
		WHERE session_id = $1
		ORDER BY created_at, id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query movies: %w", err)
	}
	defer rows.Close()

	movies := []models.Movie{}
	for rows.Next() {
		var m models.Movie
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Title, &m.Poster, &m.Year,
			&m.Director, &m.Genre, &m.Rating, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read movies: %w", err)
	}
	return movies, nil
}

func (s *SQLStore) ListVotes(ctx context.Context, sessionID string) ([]models.Vote, error) {
	return s.queryVotes(ctx, `
		SELECT id, session_id, movie_id, user_id, rank, voted_at
		FROM vote
		WHERE session_id = $1
		ORDER BY user_id, rank
	`, sessionID)
}

func (s *SQLStore) ListUserVotes(ctx context.Context, sessionID, userID string) ([]models.Vote, error) {
	return s.queryVotes(ctx, `
		SELECT id, session_id, movie_id, user_id, rank, voted_at
		FROM vote
		WHERE session_id = $1 AND user_id = $2
		ORDER BY rank
	`, sessionID, userID)
}

func (s *SQLStore) queryVotes(ctx context.Context, query string, args ...any) ([]models.Vote, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.SessionID, &v.MovieID, &v.UserID, &v.Rank, &v.VotedAt); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read votes: %w", err)
	}
	return votes, nil
}

// ReplaceSlate deletes the voter's previous votes and inserts the new slate
// in one transaction, provided the session is still open. On Postgres a
// transaction-scoped advisory lock keyed on (session, user) serializes
// concurrent submissions from the same voter.
func (s *SQLStore) ReplaceSlate(ctx context.Context, sessionID, userID string, votes []models.Vote) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if s.dialect == DialectPostgres {
		if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, sessionID+"|"+userID); err != nil {
			return fmt.Errorf("failed to acquire slate lock: %w", err)
		}
	}

	// FOR SHARE blocks a concurrent close until this slate commits
	statusQuery := `SELECT status FROM movie_session WHERE id = $1`
	if s.dialect == DialectPostgres {
		statusQuery += ` FOR SHARE`
	}
	var status string
	err = tx.QueryRowContext(ctx, statusQuery, sessionID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to check session status: %w", err)
	}
	if status != models.StatusOpen {
		return ErrSessionClosed
	}

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM vote WHERE session_id = $1 AND user_id = $2
	`, sessionID, userID); err != nil {
		return fmt.Errorf("failed to delete previous votes: %w", err)
	}

	for _, v := range votes {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO vote (id, session_id, movie_id, user_id, rank, voted_at)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, v.ID, sessionID, v.MovieID, userID, v.Rank, v.VotedAt); err != nil {
			return fmt.Errorf("failed to insert vote: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit slate: %w", err)
	}
	return nil
}

func (s *SQLStore) DeleteAllVotes(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM vote`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete votes: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted votes: %w", err)
	}
	return n, nil
}

func (s *SQLStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	return s.db.Close()
}
