// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/movie-night/auth"
	"github.com/danielhkuo/movie-night/metrics"
	"github.com/danielhkuo/movie-night/models"
	"github.com/danielhkuo/movie-night/store"
	"github.com/danielhkuo/movie-night/validation"
)

const defaultTimeout = 5 * time.Second

// IdentityResolver turns a bearer credential into a user ID
type IdentityResolver interface {
	ResolveUser(token string) (string, error)
}

// Identity is what a caller presents: a bearer token, a pre-resolved user ID,
// or both. A token always wins over UserID.
type Identity struct {
	Token  string
	UserID string
}

type identityRule int

const (
	identityOptional identityRule = iota
	identityRequired
	bearerRequired
)

// Service implements slate submission, tallying and session management on
// top of a Store. It holds no per-request state.
type Service struct {
	store    store.Store
	identity IdentityResolver
	timeout  time.Duration
	now      func() time.Time
}

func NewService(st store.Store, identity IdentityResolver, timeout time.Duration) *Service {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Service{
		store:    st,
		identity: identity,
		timeout:  timeout,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SubmitSlate validates a voter's complete ranking and replaces any slate the
// voter previously submitted for the session. Nothing is written unless every
// check passes, and the replace is atomic.
func (s *Service) SubmitSlate(ctx context.Context, ident Identity, req models.SubmitVotesRequest) (votes []models.Vote, err error) {
	defer func() {
		if err != nil {
			metrics.RecordSlate(KindOf(err), 0)
		} else {
			metrics.RecordSlate("accepted", len(votes))
		}
	}()

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		return nil, validationError("missing required identifiers: sessionId")
	}
	if len(req.Votes) == 0 {
		return nil, validationError("empty vote slate")
	}
	if err := validateEntries(req.Votes); err != nil {
		return nil, err
	}

	if ident.UserID == "" {
		ident.UserID = req.UserID
	}
	userID, err := s.resolve(ident, identityRequired)
	if err != nil {
		return nil, err
	}

	session, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != models.StatusOpen {
		return nil, conflictError("session %s is closed", sessionID)
	}

	movies, err := s.listMovies(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	inSession := make(map[string]bool, len(movies))
	for _, m := range movies {
		inSession[m.ID] = true
	}

	votedAt := s.now()
	votes = make([]models.Vote, 0, len(req.Votes))
	for _, entry := range req.Votes {
		if !inSession[entry.MovieID] {
			return nil, notFoundError("movie %s not found in session %s", entry.MovieID, sessionID)
		}
		if *entry.Rank > len(movies) {
			return nil, validationError("rank %d out of range 1..%d", *entry.Rank, len(movies))
		}
		id, err := auth.GenerateID()
		if err != nil {
			return nil, storageError("id generation", err)
		}
		votes = append(votes, models.Vote{
			ID:        id,
			SessionID: sessionID,
			MovieID:   entry.MovieID,
			UserID:    userID,
			Rank:      *entry.Rank,
			VotedAt:   votedAt,
		})
	}

	err = s.call(ctx, "replace_slate", func(ctx context.Context) error {
		return s.store.ReplaceSlate(ctx, sessionID, userID, votes)
	})
	if errors.Is(err, store.ErrSessionClosed) {
		return nil, conflictError("session %s is closed", sessionID)
	}
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFoundError("session %s not found", sessionID)
	}
	if err != nil {
		slog.Error("failed to replace slate", "error", err, "session_id", sessionID, "user_id", userID)
		return nil, storageError("slate replace", err)
	}

	slog.Info("slate submitted", "session_id", sessionID, "user_id", userID, "movies", len(votes))
	return votes, nil
}

// slate wraps entries so field errors read "votes[i].rank"
type slate struct {
	Votes []models.VoteEntry `json:"votes" validate:"dive"`
}

// validateEntries checks field presence and rank bounds per entry, then
// uniqueness of ranks and movies across the slate.
func validateEntries(entries []models.VoteEntry) error {
	if err := validation.Struct(slate{Votes: entries}); err != nil {
		return &Error{Kind: ErrValidation, Message: err.Error(), Err: err}
	}

	ranks := make(map[int]string, len(entries))
	movies := make(map[string]bool, len(entries))
	for _, entry := range entries {
		if other, used := ranks[*entry.Rank]; used {
			return validationError("duplicate rank %d for movies %s and %s", *entry.Rank, other, entry.MovieID)
		}
		ranks[*entry.Rank] = entry.MovieID

		if movies[entry.MovieID] {
			return validationError("movie %s ranked more than once", entry.MovieID)
		}
		movies[entry.MovieID] = true
	}
	return nil
}

// ComputeResults tallies a session without regard to who is asking
func (s *Service) ComputeResults(ctx context.Context, sessionID string) (models.Results, error) {
	start := time.Now()
	defer func() { metrics.RecordTally(time.Since(start)) }()

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return models.Results{}, validationError("missing required identifiers: sessionId")
	}
	if _, err := s.getSession(ctx, sessionID); err != nil {
		return models.Results{}, err
	}

	movies, votes, err := s.load(ctx, sessionID)
	if err != nil {
		return models.Results{}, err
	}
	return Tally(movies, votes), nil
}

// SessionView returns the standings plus whether the caller has voted.
// Anonymous callers are allowed and always see HasVoted false.
func (s *Service) SessionView(ctx context.Context, ident Identity, sessionID string) (models.SessionView, error) {
	start := time.Now()
	defer func() { metrics.RecordTally(time.Since(start)) }()

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return models.SessionView{}, validationError("missing required identifiers: sessionId")
	}
	userID, err := s.resolve(ident, identityOptional)
	if err != nil {
		return models.SessionView{}, err
	}
	if _, err := s.getSession(ctx, sessionID); err != nil {
		return models.SessionView{}, err
	}

	movies, err := s.listMovies(ctx, sessionID)
	if err != nil {
		return models.SessionView{}, err
	}
	if len(movies) == 0 {
		return models.SessionView{Results: []models.MovieResult{}}, nil
	}
	votes, err := s.listVotes(ctx, sessionID)
	if err != nil {
		return models.SessionView{}, err
	}

	results := Tally(movies, votes)
	return models.SessionView{
		Results:     results.Results,
		TotalVoters: results.TotalVoters,
		HasVoted:    HasVoted(votes, userID),
	}, nil
}

// load fetches movies and votes concurrently
func (s *Service) load(ctx context.Context, sessionID string) ([]models.Movie, []models.Vote, error) {
	var movies []models.Movie
	var votes []models.Vote

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		movies, err = s.listMovies(gctx, sessionID)
		return err
	})
	g.Go(func() error {
		var err error
		votes, err = s.listVotes(gctx, sessionID)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.Error("failed to load session data", "error", err, "session_id", sessionID)
		return nil, nil, err
	}
	return movies, votes, nil
}

func (s *Service) resolve(ident Identity, rule identityRule) (string, error) {
	if token := strings.TrimSpace(ident.Token); token != "" {
		if s.identity == nil {
			return "", authError("bearer credentials are not accepted", nil)
		}
		userID, err := s.identity.ResolveUser(token)
		if err != nil {
			return "", authError("invalid bearer credential", err)
		}
		return userID, nil
	}

	if rule == bearerRequired {
		return "", authError("bearer credential required", nil)
	}
	if userID := strings.TrimSpace(ident.UserID); userID != "" {
		return userID, nil
	}
	if rule == identityRequired {
		return "", authError("missing required identifiers: no resolvable user identity", nil)
	}
	return "", nil
}

func (s *Service) getSession(ctx context.Context, sessionID string) (models.Session, error) {
	var session models.Session
	err := s.call(ctx, "get_session", func(ctx context.Context) error {
		var err error
		session, err = s.store.GetSession(ctx, sessionID)
		return err
	})
	if errors.Is(err, store.ErrNotFound) {
		return models.Session{}, notFoundError("session %s not found", sessionID)
	}
	if err != nil {
		return models.Session{}, storageError("session lookup", err)
	}
	return session, nil
}

func (s *Service) listMovies(ctx context.Context, sessionID string) ([]models.Movie, error) {
	var movies []models.Movie
	err := s.call(ctx, "list_movies", func(ctx context.Context) error {
		var err error
		movies, err = s.store.ListMovies(ctx, sessionID)
		return err
	})
	if err != nil {
		return nil, storageError("movie lookup", err)
	}
	return movies, nil
}

func (s *Service) listVotes(ctx context.Context, sessionID string) ([]models.Vote, error) {
	var votes []models.Vote
	err := s.call(ctx, "list_votes", func(ctx context.Context) error {
		var err error
		votes, err = s.store.ListVotes(ctx, sessionID)
		return err
	})
	if err != nil {
		return nil, storageError("vote lookup", err)
	}
	return votes, nil
}

// call runs fn under the store timeout and records its duration
func (s *Service) call(ctx context.Context, op string, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	err := fn(ctx)
	metrics.RecordStoreOp(op, time.Since(start), err)
	return err
}
