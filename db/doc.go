// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the configured backend and creates its schema.

# Opening a Store

Open picks the backend from DATABASE_TYPE:

	st, err := db.Open(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer st.Close()

Postgres and SQLite return a store.SQLStore after CreateSchema has run.
Mongo returns a store.MongoStore after its indexes have been created.

# Schema Creation

CreateSchema is safe to call multiple times - uses IF NOT EXISTS for all
tables and indexes.

# Tables

  - movie_session: Session metadata, host and open/closed state
  - movie: Candidate movies per session
  - vote: One row per (session, user, movie) with the voter's rank

# Relationships

	movie_session 1──* movie
	movie_session 1──* vote
	movie 1──* vote

All foreign keys use ON DELETE CASCADE.

# Constraints

  - vote.(session_id, user_id, movie_id) is unique
  - vote.(session_id, user_id, rank) is unique
  - vote.rank >= 1
*/
package db
