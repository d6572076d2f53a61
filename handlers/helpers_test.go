// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"testing"

	"github.com/danielhkuo/movie-night/store"
	"github.com/danielhkuo/movie-night/testutil"
	"github.com/danielhkuo/movie-night/voting"
)

// newTestService builds a service over a fresh in-memory store
func newTestService(t *testing.T) (*store.SQLStore, *voting.Service) {
	t.Helper()
	st := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	return st, voting.NewService(st, testutil.TestVerifier(t), cfg.StoreTimeout)
}
