// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the movie-night API server.

movie-night lets a group rank candidate movies for a viewing session. Each
voter submits a complete ranked slate (rank 1 is the favourite), may replace
it any time while the session is open, and everyone sees standings ordered
by score = votes × (N + 1 − average rank).

# Starting the Server

Configuration comes from CLI flags, environment variables or a .env file:

	DATABASE_URL=:memory: JWT_SECRET=... ADMIN_KEY=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - DATABASE_URL (-d): Connection string or SQLite path
  - JWT_SECRET (--jwt-secret): HS256 signing secret, at least 32 characters
  - ADMIN_KEY (--admin-key): Key for DELETE /admin/votes

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite, postgres or mongo (default: sqlite)
  - MONGO_DATABASE (--mongo-db): Database name for mongo (default: movienight)
  - STORE_TIMEOUT (--store-timeout): Per round trip store timeout (default: 5s)
  - LOG_LEVEL, LOG_FORMAT: slog level and json (default) or text output

# Architecture

  - voting: Slate submission, tallying, session rules and error kinds
  - store: Store interface with SQL (postgres, sqlite) and MongoDB backends
  - db: Connection setup and SQL schema
  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, JSON helpers
  - auth: Bearer tokens, admin key check, ID generation
  - validation: Struct validation for request bodies
  - metrics: Prometheus collectors
  - models: Request, response and domain types
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
