// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth resolves voter identity and guards maintenance endpoints.

# Bearer Tokens

Voters authenticate with HS256 JWTs whose "sub" claim is the user ID:

	v, err := auth.NewJWTVerifier(cfg.JWTSecret, "movie-night")
	token, err := auth.BearerToken(r)
	userID, err := v.ResolveUser(token)

Tokens signed with any other algorithm are rejected. IssueToken exists for
tests and local tooling.

# Admin Keys

The maintenance key is compared in constant time:

	if err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), cfg.AdminKey); err != nil {
		// 401
	}

# ID Generation

Record IDs are UUIDv7 strings, so they sort by creation time:

	id, err := auth.GenerateID()
*/
package auth
