// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the movie-night API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, cfg)

Every API route is wrapped with request logging and Prometheus metrics.

# Endpoints

Health and metrics:

	GET /health
	GET /metrics

Voting:

	POST /votes                      - Submit or replace a slate
	GET  /results?sessionId=&userId= - Standings plus hasVoted
	GET  /sessions/{id}/my-votes     - Caller's current slate
	GET  /sessions/{id}/results      - Standings only

Sessions (bearer token required to mutate):

	POST /sessions              - Create session
	GET  /sessions/{id}         - Session and movies
	POST /sessions/{id}/movies  - Add a movie
	POST /sessions/{id}/close   - Close (host only)

Maintenance (requires X-Admin-Key):

	DELETE /admin/votes
*/
package router
