// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
// The DDL sticks to types Postgres and SQLite both accept.
func CreateSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// DropSchema removes every table. Used by tests that share a database.
func DropSchema(ctx context.Context, db *sql.DB) error {
	for _, table := range []string{"vote", "movie", "movie_session"} {
		if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+table); err != nil {
			return fmt.Errorf("failed to drop %s: %w", table, err)
		}
	}
	return nil
}

// One statement per entry; lib/pq and modernc sqlite differ on multi-statement Exec.
var schema = []string{
	// Sessions
	`CREATE TABLE IF NOT EXISTS movie_session (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		host_id TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'closed')),
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		closed_at TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_movie_session_host ON movie_session(host_id)`,

	// Movies
	`CREATE TABLE IF NOT EXISTS movie (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES movie_session(id) ON DELETE CASCADE,
		title TEXT NOT NULL,
		poster TEXT,
		year INTEGER,
		director TEXT,
		genre TEXT,
		rating REAL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_movie_session_order ON movie(session_id, created_at, id)`,

	// Votes: one row per (session, user, movie); ranks are unique per voter
	`CREATE TABLE IF NOT EXISTS vote (
		id TEXT PRIMARY KEY,
		session_id TEXT NOT NULL REFERENCES movie_session(id) ON DELETE CASCADE,
		movie_id TEXT NOT NULL REFERENCES movie(id) ON DELETE CASCADE,
		user_id TEXT NOT NULL,
		rank INTEGER NOT NULL CHECK (rank >= 1),
		voted_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (session_id, user_id, movie_id),
		UNIQUE (session_id, user_id, rank)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_vote_session_user ON vote(session_id, user_id)`,
}
