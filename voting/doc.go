// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting implements slate submission, tallying and session management.

# Ranks and Scores

A voter ranks every movie they care about from 1 (top pick) upward. For each
movie the tally computes

	score = voteCount * (totalMovies + 1 - avgRank)

so a lower average rank and more voters both raise the score. Movies nobody
ranked have a nil AvgRank and score 0. Results are sorted by descending score;
equal scores keep the store's movie order (created_at, id).

# Submitting a Slate

	votes, err := svc.SubmitSlate(ctx, voting.Identity{Token: token}, req)

Every check (field presence, distinct ranks, distinct movies, identity,
session open, movies belong to the session, rank within 1..N) runs before
anything is written. The previous slate is then replaced in one atomic store
operation.

# Identity

A bearer token, when present, must verify and wins over a plain user ID.
Submissions need some identity; results accept anonymous callers.

# Errors

Every error returned by Service is an *Error whose kind matches one of
ErrValidation, ErrAuth, ErrNotFound, ErrConflict or ErrStorage:

	if errors.Is(err, voting.ErrValidation) {
		// 400
	}

Store calls run under the configured timeout; a timeout is an ErrStorage.
*/
package voting
