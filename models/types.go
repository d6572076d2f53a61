// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Session status constants
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Request types

type CreateSessionRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

type AddMovieRequest struct {
	Title    string   `json:"title" validate:"required,max=300"`
	Poster   *string  `json:"poster,omitempty" validate:"omitempty,url"`
	Year     *int     `json:"year,omitempty" validate:"omitempty,min=1870,max=2100"`
	Director *string  `json:"director,omitempty"`
	Genre    *string  `json:"genre,omitempty"`
	Rating   *float64 `json:"rating,omitempty" validate:"omitempty,min=0,max=10"`
}

// VoteEntry is one movie's rank inside a submitted slate.
// Rank is a pointer so a missing rank can be told apart from rank 0.
type VoteEntry struct {
	MovieID string `json:"movieId" validate:"required"`
	Rank    *int   `json:"rank" validate:"required,min=1"`
}

type SubmitVotesRequest struct {
	SessionID string      `json:"sessionId"`
	Votes     []VoteEntry `json:"votes"`
	UserID    string      `json:"userId,omitempty"`
}

// Response types

type SubmitVotesResponse struct {
	Success bool   `json:"success"`
	Votes   []Vote `json:"votes"`
}

type CloseSessionResponse struct {
	ClosedAt time.Time `json:"closedAt"`
}

type DeleteVotesResponse struct {
	Deleted int64 `json:"deleted"`
}

// Domain types

type Session struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	HostID    string     `json:"hostId"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"createdAt"`
	ClosedAt  *time.Time `json:"closedAt,omitempty"`
}

// Movie metadata fields are optional and never affect tallying.
type Movie struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Title     string    `json:"title"`
	Poster    *string   `json:"poster,omitempty"`
	Year      *int      `json:"year,omitempty"`
	Director  *string   `json:"director,omitempty"`
	Genre     *string   `json:"genre,omitempty"`
	Rating    *float64  `json:"rating,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type SessionWithMovies struct {
	Session Session `json:"session"`
	Movies  []Movie `json:"movies"`
}

// Vote is one voter's rank for one movie in one session.
// Rank 1 is the voter's most preferred movie.
type Vote struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	MovieID   string    `json:"movieId"`
	UserID    string    `json:"userId"`
	Rank      int       `json:"rank"`
	VotedAt   time.Time `json:"votedAt"`
}

// Results types

type MovieResult struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Votes   int      `json:"votes"`
	AvgRank *float64 `json:"avgRank"` // null when nobody ranked the movie
	Score   float64  `json:"score"`
}

type Results struct {
	Results     []MovieResult `json:"results"`
	TotalVoters int           `json:"totalVoters"`
}

type SessionView struct {
	Results     []MovieResult `json:"results"`
	TotalVoters int           `json:"totalVoters"`
	HasVoted    bool          `json:"hasVoted"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
}
