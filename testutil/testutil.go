// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/danielhkuo/movie-night/auth"
	"github.com/danielhkuo/movie-night/cliparse"
	"github.com/danielhkuo/movie-night/db"
	"github.com/danielhkuo/movie-night/models"
	"github.com/danielhkuo/movie-night/store"
)

const (
	TestJWTSecret = "test-jwt-secret-with-at-least-32-chars"
	TestAdminKey  = "test-admin-key"
	TestIssuer    = "movie-night"
)

// SetupTestStore creates a fresh in-memory SQLite store with the full schema
func SetupTestStore(t *testing.T) *store.SQLStore {
	t.Helper()

	ctx := context.Background()
	conn, err := db.OpenSQL(ctx, store.DialectSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.CreateSchema(ctx, conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return store.NewSQLStore(conn, store.DialectSQLite)
}

// SetupPostgresStore connects to TEST_POSTGRES_URL and recreates the schema.
// The test is skipped when the variable is unset.
func SetupPostgresStore(t *testing.T) *store.SQLStore {
	t.Helper()

	url := os.Getenv("TEST_POSTGRES_URL")
	if url == "" {
		t.Skip("TEST_POSTGRES_URL not set")
	}

	ctx := context.Background()
	conn, err := db.OpenSQL(ctx, store.DialectPostgres, url)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := db.DropSchema(ctx, conn); err != nil {
		t.Fatalf("Failed to clean database: %v", err)
	}
	if err := db.CreateSchema(ctx, conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return store.NewSQLStore(conn, store.DialectPostgres)
}

// SetupMongoStore connects to TEST_MONGO_URL using a throwaway database.
// The test is skipped when the variable is unset.
func SetupMongoStore(t *testing.T) *store.MongoStore {
	t.Helper()

	url := os.Getenv("TEST_MONGO_URL")
	if url == "" {
		t.Skip("TEST_MONGO_URL not set")
	}

	ctx := context.Background()
	s, err := store.NewMongoStore(ctx, url, "movienight_test")
	if err != nil {
		t.Fatalf("Failed to connect to mongo: %v", err)
	}
	if err := s.Drop(ctx); err != nil {
		t.Fatalf("Failed to clean mongo: %v", err)
	}
	if err := s.EnsureIndexes(ctx); err != nil {
		t.Fatalf("Failed to create indexes: %v", err)
	}
	t.Cleanup(func() {
		s.Drop(context.Background())
		s.Close()
	})

	return s
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		DatabaseURL:  ":memory:",
		DatabaseType: cliparse.DatabaseSQLite,
		JWTSecret:    TestJWTSecret,
		AdminKey:     TestAdminKey,
		StoreTimeout: 5 * time.Second,
	}
}

// TestVerifier returns a verifier using the test secret
func TestVerifier(t *testing.T) *auth.JWTVerifier {
	t.Helper()
	v, err := auth.NewJWTVerifier(TestJWTSecret, TestIssuer)
	if err != nil {
		t.Fatalf("Failed to create verifier: %v", err)
	}
	return v
}

// TestToken issues a bearer token for userID
func TestToken(t *testing.T, userID string) string {
	t.Helper()
	token, err := TestVerifier(t).IssueToken(userID, time.Hour)
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}
	return token
}

// BearerHeader returns request headers carrying a token for userID
func BearerHeader(t *testing.T, userID string) map[string]string {
	t.Helper()
	return map[string]string{"Authorization": "Bearer " + TestToken(t, userID)}
}

// CreateTestSession creates a session hosted by hostID and returns its ID
// status should be "open" or "closed"
func CreateTestSession(t *testing.T, st store.Store, hostID, status string) string {
	t.Helper()

	id, _ := auth.GenerateID()
	session := models.Session{
		ID:        id,
		Name:      "Test Night",
		HostID:    hostID,
		Status:    status,
		CreatedAt: time.Now().UTC(),
	}
	if status == models.StatusClosed {
		closedAt := time.Now().UTC()
		session.ClosedAt = &closedAt
	}
	if err := st.CreateSession(context.Background(), session); err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}
	return id
}

// AddTestMovie adds a movie to a session and returns the movie ID
func AddTestMovie(t *testing.T, st store.Store, sessionID, title string) string {
	t.Helper()

	id, _ := auth.GenerateID()
	err := st.AddMovie(context.Background(), models.Movie{
		ID:        id,
		SessionID: sessionID,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("Failed to create test movie: %v", err)
	}
	return id
}

// SubmitTestSlate stores a slate directly, ranking movieIDs in order (rank 1 first)
func SubmitTestSlate(t *testing.T, st store.Store, sessionID, userID string, movieIDs ...string) {
	t.Helper()

	votes := make([]models.Vote, 0, len(movieIDs))
	for i, movieID := range movieIDs {
		id, _ := auth.GenerateID()
		votes = append(votes, models.Vote{
			ID:        id,
			SessionID: sessionID,
			MovieID:   movieID,
			UserID:    userID,
			Rank:      i + 1,
			VotedAt:   time.Now().UTC(),
		})
	}
	if err := st.ReplaceSlate(context.Background(), sessionID, userID, votes); err != nil {
		t.Fatalf("Failed to submit test slate: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
