// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the movie-night API.

# Handler Types

Each handler wraps a *voting.Service:

  - SessionHandler: Session lifecycle and movie list
  - VotingHandler: Slate submission and the caller's current slate
  - ResultsHandler: Ranked standings
  - AdminHandler: Health check and vote wipe

	votingHandler := handlers.NewVotingHandler(svc)

# Identity

Callers identify themselves with an Authorization: Bearer token or, where
allowed, a plain userId. A valid bearer token always wins. A malformed
Authorization header is rejected with 401 before the service is called.

# Errors

Service errors map to statuses by kind:

	validation → 400
	auth       → 401
	not_found  → 404
	conflict   → 409
	storage    → 500

The body is always {"error", "kind", "message"}. Storage causes are logged,
never returned.
*/
package handlers
