// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/danielhkuo/movie-night/models"
	"github.com/danielhkuo/movie-night/store"
	"github.com/danielhkuo/movie-night/testutil"
)

// backends runs fn against every store available in this environment
func backends(t *testing.T, fn func(t *testing.T, st store.Store)) {
	t.Run("sqlite", func(t *testing.T) {
		fn(t, testutil.SetupTestStore(t))
	})
	t.Run("postgres", func(t *testing.T) {
		fn(t, testutil.SetupPostgresStore(t))
	})
	t.Run("mongo", func(t *testing.T) {
		fn(t, testutil.SetupMongoStore(t))
	})
}

func slate(sessionID, userID string, movieIDs ...string) []models.Vote {
	votes := make([]models.Vote, len(movieIDs))
	for i, movieID := range movieIDs {
		votes[i] = models.Vote{
			ID:        fmt.Sprintf("%s-%s-%d-%d", userID, movieID, i, time.Now().UnixNano()),
			SessionID: sessionID,
			MovieID:   movieID,
			UserID:    userID,
			Rank:      i + 1,
			VotedAt:   time.Now().UTC(),
		}
	}
	return votes
}

func TestSessionLifecycle(t *testing.T) {
	backends(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		sessionID := testutil.CreateTestSession(t, st, "host-1", models.StatusOpen)

		session, err := st.GetSession(ctx, sessionID)
		if err != nil {
			t.Fatalf("GetSession() error = %v", err)
		}
		if session.HostID != "host-1" || session.Status != models.StatusOpen {
			t.Errorf("unexpected session %+v", session)
		}
		if session.ClosedAt != nil {
			t.Errorf("expected nil closedAt, got %v", session.ClosedAt)
		}

		if err := st.CloseSession(ctx, sessionID, time.Now().UTC()); err != nil {
			t.Fatalf("CloseSession() error = %v", err)
		}
		session, _ = st.GetSession(ctx, sessionID)
		if session.Status != models.StatusClosed || session.ClosedAt == nil {
			t.Errorf("expected closed session with closedAt, got %+v", session)
		}
	})
}

func TestNotFound(t *testing.T) {
	backends(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		if _, err := st.GetSession(ctx, "missing"); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("GetSession() error = %v, want ErrNotFound", err)
		}
		if err := st.CloseSession(ctx, "missing", time.Now()); !errors.Is(err, store.ErrNotFound) {
			t.Errorf("CloseSession() error = %v, want ErrNotFound", err)
		}
	})
}

func TestListMoviesOrder(t *testing.T) {
	backends(t, func(t *testing.T, st store.Store) {
		sessionID := testutil.CreateTestSession(t, st, "host", models.StatusOpen)
		titles := []string{"Alien", "Brazil", "Casablanca", "Dune"}
		for _, title := range titles {
			testutil.AddTestMovie(t, st, sessionID, title)
		}
		// A movie in another session must not leak in
		other := testutil.CreateTestSession(t, st, "host", models.StatusOpen)
		testutil.AddTestMovie(t, st, other, "Elsewhere")

		movies, err := st.ListMovies(context.Background(), sessionID)
		if err != nil {
			t.Fatal(err)
		}
		if len(movies) != len(titles) {
			t.Fatalf("expected %d movies, got %d", len(titles), len(movies))
		}
		for i, m := range movies {
			if m.Title != titles[i] {
				t.Errorf("movie %d: expected %s, got %s", i, titles[i], m.Title)
			}
		}
	})
}

func TestMovieMetadataRoundTrip(t *testing.T) {
	backends(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		sessionID := testutil.CreateTestSession(t, st, "host", models.StatusOpen)

		poster := "https://example.com/p.jpg"
		year := 1982
		rating := 8.1
		err := st.AddMovie(ctx, models.Movie{
			ID: "m-meta", SessionID: sessionID, Title: "Blade Runner",
			Poster: &poster, Year: &year, Rating: &rating, CreatedAt: time.Now().UTC(),
		})
		if err != nil {
			t.Fatal(err)
		}

		movies, err := st.ListMovies(ctx, sessionID)
		if err != nil {
			t.Fatal(err)
		}
		m := movies[0]
		if m.Poster == nil || *m.Poster != poster {
			t.Errorf("poster not preserved: %v", m.Poster)
		}
		if m.Year == nil || *m.Year != year {
			t.Errorf("year not preserved: %v", m.Year)
		}
		if m.Rating == nil || *m.Rating != rating {
			t.Errorf("rating not preserved: %v", m.Rating)
		}
		if m.Director != nil || m.Genre != nil {
			t.Errorf("expected nil director and genre, got %v %v", m.Director, m.Genre)
		}
	})
}

func TestReplaceSlate(t *testing.T) {
	backends(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		sessionID := testutil.CreateTestSession(t, st, "host", models.StatusOpen)
		a := testutil.AddTestMovie(t, st, sessionID, "A")
		b := testutil.AddTestMovie(t, st, sessionID, "B")
		c := testutil.AddTestMovie(t, st, sessionID, "C")

		if err := st.ReplaceSlate(ctx, sessionID, "alice", slate(sessionID, "alice", a, b, c)); err != nil {
			t.Fatalf("first ReplaceSlate() error = %v", err)
		}
		if err := st.ReplaceSlate(ctx, sessionID, "bob", slate(sessionID, "bob", c)); err != nil {
			t.Fatalf("bob ReplaceSlate() error = %v", err)
		}

		// Resubmitting replaces, never appends
		if err := st.ReplaceSlate(ctx, sessionID, "alice", slate(sessionID, "alice", b)); err != nil {
			t.Fatalf("second ReplaceSlate() error = %v", err)
		}

		alice, err := st.ListUserVotes(ctx, sessionID, "alice")
		if err != nil {
			t.Fatal(err)
		}
		if len(alice) != 1 || alice[0].MovieID != b || alice[0].Rank != 1 {
			t.Errorf("expected alice to rank only B at 1, got %+v", alice)
		}

		all, err := st.ListVotes(ctx, sessionID)
		if err != nil {
			t.Fatal(err)
		}
		if len(all) != 2 {
			t.Errorf("expected 2 votes in session, got %d", len(all))
		}
	})
}

func TestReplaceSlateIsAtomic(t *testing.T) {
	backends(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		sessionID := testutil.CreateTestSession(t, st, "host", models.StatusOpen)
		a := testutil.AddTestMovie(t, st, sessionID, "A")
		b := testutil.AddTestMovie(t, st, sessionID, "B")

		if err := st.ReplaceSlate(ctx, sessionID, "alice", slate(sessionID, "alice", a, b)); err != nil {
			t.Fatal(err)
		}

		// Duplicate rank violates the uniqueness constraint mid-transaction
		bad := slate(sessionID, "alice", b, a)
		bad[1].Rank = 1
		if err := st.ReplaceSlate(ctx, sessionID, "alice", bad); err == nil {
			t.Fatal("expected error for duplicate rank")
		}

		votes, err := st.ListUserVotes(ctx, sessionID, "alice")
		if err != nil {
			t.Fatal(err)
		}
		if len(votes) != 2 || votes[0].MovieID != a || votes[1].MovieID != b {
			t.Errorf("previous slate should survive a failed replace, got %+v", votes)
		}
	})
}

func TestReplaceSlateRejectsClosedSession(t *testing.T) {
	backends(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		sessionID := testutil.CreateTestSession(t, st, "host", models.StatusOpen)
		a := testutil.AddTestMovie(t, st, sessionID, "A")
		b := testutil.AddTestMovie(t, st, sessionID, "B")

		if err := st.ReplaceSlate(ctx, sessionID, "alice", slate(sessionID, "alice", a)); err != nil {
			t.Fatal(err)
		}
		if err := st.CloseSession(ctx, sessionID, time.Now().UTC()); err != nil {
			t.Fatal(err)
		}

		err := st.ReplaceSlate(ctx, sessionID, "alice", slate(sessionID, "alice", b, a))
		if !errors.Is(err, store.ErrSessionClosed) {
			t.Fatalf("expected ErrSessionClosed, got %v", err)
		}

		votes, err := st.ListUserVotes(ctx, sessionID, "alice")
		if err != nil {
			t.Fatal(err)
		}
		if len(votes) != 1 || votes[0].MovieID != a {
			t.Errorf("slate should be unchanged after close, got %+v", votes)
		}

		err = st.ReplaceSlate(ctx, "missing", "alice", slate("missing", "alice", a))
		if !errors.Is(err, store.ErrNotFound) {
			t.Errorf("expected ErrNotFound for unknown session, got %v", err)
		}
	})
}

func TestReplaceSlateConcurrentSameVoter(t *testing.T) {
	backends(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		sessionID := testutil.CreateTestSession(t, st, "host", models.StatusOpen)
		movies := make([]string, 4)
		for i := range movies {
			movies[i] = testutil.AddTestMovie(t, st, sessionID, fmt.Sprintf("M%d", i))
		}

		orders := [][]string{
			{movies[0], movies[1], movies[2], movies[3]},
			{movies[3], movies[2]},
			{movies[1]},
		}

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(order []string) {
				defer wg.Done()
				// Serialization failures surface as errors; they must never leave a mix
				st.ReplaceSlate(ctx, sessionID, "carol", slate(sessionID, "carol", order...))
			}(orders[i%len(orders)])
		}
		wg.Wait()

		votes, err := st.ListUserVotes(ctx, sessionID, "carol")
		if err != nil {
			t.Fatal(err)
		}
		matched := false
		for _, order := range orders {
			if len(order) != len(votes) {
				continue
			}
			same := true
			for i, v := range votes {
				if v.MovieID != order[i] || v.Rank != i+1 {
					same = false
				}
			}
			if same {
				matched = true
			}
		}
		if !matched {
			t.Errorf("final slate is not one of the submitted slates: %+v", votes)
		}
	})
}

func TestDeleteAllVotes(t *testing.T) {
	backends(t, func(t *testing.T, st store.Store) {
		ctx := context.Background()
		sessionID := testutil.CreateTestSession(t, st, "host", models.StatusOpen)
		a := testutil.AddTestMovie(t, st, sessionID, "A")
		b := testutil.AddTestMovie(t, st, sessionID, "B")
		testutil.SubmitTestSlate(t, st, sessionID, "u1", a, b)
		testutil.SubmitTestSlate(t, st, sessionID, "u2", b)

		n, err := st.DeleteAllVotes(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if n != 3 {
			t.Errorf("expected 3 deleted, got %d", n)
		}

		votes, _ := st.ListVotes(ctx, sessionID)
		if len(votes) != 0 {
			t.Errorf("expected no votes left, got %d", len(votes))
		}
		movies, _ := st.ListMovies(ctx, sessionID)
		if len(movies) != 2 {
			t.Errorf("movies should be untouched, got %d", len(movies))
		}
	})
}

func TestPing(t *testing.T) {
	backends(t, func(t *testing.T, st store.Store) {
		if err := st.Ping(context.Background()); err != nil {
			t.Errorf("Ping() error = %v", err)
		}
	})
}
