// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store persists sessions, movies and votes.

Two implementations satisfy Store:

  - SQLStore: database/sql with lib/pq (Postgres) or modernc.org/sqlite
  - MongoStore: the official MongoDB driver

# Slate Replacement

ReplaceSlate deletes a voter's previous votes for a session and inserts the
new slate as one atomic unit. SQLStore runs both steps in a transaction and,
on Postgres, takes pg_advisory_xact_lock keyed on the session and user so
concurrent submissions from one voter queue up. MongoStore runs both steps in
a multi-document transaction.

Inside the same transaction ReplaceSlate rechecks the session status and
returns ErrSessionClosed if it has been closed, so a close never lets a late
slate through.

Lookups of a missing session return ErrNotFound.
*/
package store
