// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/movie-night/models"
	"github.com/danielhkuo/movie-night/testutil"
)

func TestCreateSession(t *testing.T) {
	_, svc := newTestService(t)
	handler := NewSessionHandler(svc)

	tests := []struct {
		name           string
		body           interface{}
		headers        map[string]string
		expectedStatus int
	}{
		{
			name:           "valid session",
			body:           map[string]string{"name": "Friday Night"},
			headers:        testutil.BearerHeader(t, "host"),
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "no bearer",
			body:           map[string]string{"name": "Friday Night"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "empty name",
			body:           map[string]string{"name": "   "},
			headers:        testutil.BearerHeader(t, "host"),
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/sessions", tt.body, tt.headers)
			w := httptest.NewRecorder()

			handler.CreateSession(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus == http.StatusCreated {
				var session models.Session
				testutil.AssertJSON(t, w, &session)
				if session.ID == "" || session.HostID != "host" || session.Status != models.StatusOpen {
					t.Errorf("Unexpected session %+v", session)
				}
			}
		})
	}
}

func TestGetSession(t *testing.T) {
	st, svc := newTestService(t)
	handler := NewSessionHandler(svc)

	sessionID := testutil.CreateTestSession(t, st, "host", models.StatusOpen)
	first := testutil.AddTestMovie(t, st, sessionID, "First")
	testutil.AddTestMovie(t, st, sessionID, "Second")

	req := testutil.MakeRequest("GET", "/sessions/"+sessionID, nil, nil)
	req.SetPathValue("id", sessionID)
	w := httptest.NewRecorder()

	handler.GetSession(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.SessionWithMovies
	testutil.AssertJSON(t, w, &resp)
	if resp.Session.ID != sessionID {
		t.Errorf("Expected session %s, got %s", sessionID, resp.Session.ID)
	}
	if len(resp.Movies) != 2 || resp.Movies[0].ID != first {
		t.Errorf("Expected movies in insertion order, got %+v", resp.Movies)
	}

	req = testutil.MakeRequest("GET", "/sessions/missing", nil, nil)
	req.SetPathValue("id", "missing")
	w = httptest.NewRecorder()
	handler.GetSession(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestAddMovie(t *testing.T) {
	st, svc := newTestService(t)
	handler := NewSessionHandler(svc)

	openID := testutil.CreateTestSession(t, st, "host", models.StatusOpen)
	closedID := testutil.CreateTestSession(t, st, "host", models.StatusClosed)

	tests := []struct {
		name           string
		sessionID      string
		body           interface{}
		headers        map[string]string
		expectedStatus int
	}{
		{
			name:      "movie with metadata",
			sessionID: openID,
			body: map[string]interface{}{
				"title":    "Alien",
				"year":     1979,
				"director": "Ridley Scott",
				"poster":   "https://example.com/alien.jpg",
				"rating":   8.5,
			},
			headers:        testutil.BearerHeader(t, "guest"),
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "bad poster url",
			sessionID:      openID,
			body:           map[string]interface{}{"title": "Alien", "poster": "not a url"},
			headers:        testutil.BearerHeader(t, "guest"),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing title",
			sessionID:      openID,
			body:           map[string]interface{}{"year": 1979},
			headers:        testutil.BearerHeader(t, "guest"),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "no bearer",
			sessionID:      openID,
			body:           map[string]interface{}{"title": "Alien"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "closed session",
			sessionID:      closedID,
			body:           map[string]interface{}{"title": "Alien"},
			headers:        testutil.BearerHeader(t, "guest"),
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "unknown session",
			sessionID:      "missing",
			body:           map[string]interface{}{"title": "Alien"},
			headers:        testutil.BearerHeader(t, "guest"),
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/sessions/"+tt.sessionID+"/movies", tt.body, tt.headers)
			req.SetPathValue("id", tt.sessionID)
			w := httptest.NewRecorder()

			handler.AddMovie(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus == http.StatusCreated {
				var movie models.Movie
				testutil.AssertJSON(t, w, &movie)
				if movie.SessionID != tt.sessionID || movie.Year == nil || *movie.Year != 1979 {
					t.Errorf("Unexpected movie %+v", movie)
				}
			}
		})
	}
}

func TestCloseSession(t *testing.T) {
	st, svc := newTestService(t)
	handler := NewSessionHandler(svc)

	sessionID := testutil.CreateTestSession(t, st, "host", models.StatusOpen)

	closeAs := func(headers map[string]string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/sessions/"+sessionID+"/close", nil, headers)
		req.SetPathValue("id", sessionID)
		w := httptest.NewRecorder()
		handler.CloseSession(w, req)
		return w
	}

	testutil.AssertStatus(t, closeAs(nil), http.StatusUnauthorized)
	testutil.AssertStatus(t, closeAs(testutil.BearerHeader(t, "guest")), http.StatusUnauthorized)

	w := closeAs(testutil.BearerHeader(t, "host"))
	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.CloseSessionResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.ClosedAt.IsZero() {
		t.Error("Expected closedAt to be set")
	}

	testutil.AssertStatus(t, closeAs(testutil.BearerHeader(t, "host")), http.StatusConflict)

	// Closed sessions reject new movies
	req := testutil.MakeRequest("POST", "/sessions/"+sessionID+"/movies",
		map[string]string{"title": "Too Late"}, testutil.BearerHeader(t, "host"))
	req.SetPathValue("id", sessionID)
	w = httptest.NewRecorder()
	handler.AddMovie(w, req)
	testutil.AssertStatus(t, w, http.StatusConflict)
}
