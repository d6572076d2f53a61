// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

JSON field names are camelCase to match the web client.

# Request Types

Types for parsing incoming JSON:

  - CreateSessionRequest: name
  - AddMovieRequest: title plus optional poster, year, director, genre, rating
  - SubmitVotesRequest: sessionId, votes ([{movieId, rank}]), optional userId

# Response Types

Types for JSON responses:

  - SubmitVotesResponse: success, votes
  - SessionView: results, totalVoters, hasVoted
  - CloseSessionResponse: closedAt
  - DeleteVotesResponse: deleted
  - ErrorResponse: error, kind, message

# Domain Types

  - Session: a named voting round with a host and a status
  - Movie: a candidate movie with optional metadata
  - Vote: one (session, movie, user, rank) row
  - MovieResult: tallied votes, average rank, and score for a movie

# Rank Convention

Rank 1 is a voter's most preferred movie and rank N (the number of movies in
the session) the least preferred. Scores are computed as

	score = votes * (N + 1 - avgRank)

so a movie scores higher the more voters rank it and the closer to 1 they
rank it. Movies nobody ranked have a null avgRank and a score of 0.

# Constants

Status values:

	StatusOpen   = "open"
	StatusClosed = "closed"
*/
package models
