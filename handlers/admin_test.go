// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/movie-night/models"
	"github.com/danielhkuo/movie-night/testutil"
)

func TestDeleteAllVotes(t *testing.T) {
	st, svc := newTestService(t)
	handler := NewAdminHandler(svc, testutil.GetTestConfig())

	sessionID := testutil.CreateTestSession(t, st, "host", models.StatusOpen)
	a := testutil.AddTestMovie(t, st, sessionID, "A")
	b := testutil.AddTestMovie(t, st, sessionID, "B")
	testutil.SubmitTestSlate(t, st, sessionID, "alice", a, b)
	testutil.SubmitTestSlate(t, st, sessionID, "bob", b)

	tests := []struct {
		name           string
		headers        map[string]string
		expectedStatus int
	}{
		{
			name:           "missing key",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong key",
			headers:        map[string]string{"X-Admin-Key": "wrong"},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("DELETE", "/admin/votes", nil, tt.headers)
			w := httptest.NewRecorder()

			handler.DeleteAllVotes(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
		})
	}

	req := testutil.MakeRequest("DELETE", "/admin/votes", nil,
		map[string]string{"X-Admin-Key": testutil.TestAdminKey})
	w := httptest.NewRecorder()

	handler.DeleteAllVotes(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	var resp models.DeleteVotesResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Deleted != 3 {
		t.Errorf("Expected 3 deleted votes, got %d", resp.Deleted)
	}

	votes, err := st.ListVotes(context.Background(), sessionID)
	if err != nil {
		t.Fatal(err)
	}
	if len(votes) != 0 {
		t.Errorf("Expected no votes left, got %d", len(votes))
	}
}

func TestHealth(t *testing.T) {
	_, svc := newTestService(t)
	handler := NewAdminHandler(svc, testutil.GetTestConfig())

	req := testutil.MakeRequest("GET", "/health", nil, nil)
	w := httptest.NewRecorder()

	handler.Health(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)
	if w.Body.String() != "OK" {
		t.Errorf("Expected OK, got %s", w.Body.String())
	}
}
