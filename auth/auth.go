// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidAdminKey = errors.New("invalid admin key")
	ErrInvalidToken    = errors.New("invalid token")
	ErrMissingToken    = errors.New("missing bearer token")
)

// GenerateID creates a time-ordered UUID (v7) for database records
func GenerateID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate ID: %w", err)
	}
	return id.String(), nil
}

// ValidateAdminKey compares the provided key against the configured one.
// Both sides are hashed first so the comparison time does not leak length.
func ValidateAdminKey(provided, expected string) error {
	if provided == "" || expected == "" {
		return ErrInvalidAdminKey
	}
	a := sha256.Sum256([]byte(provided))
	b := sha256.Sum256([]byte(expected))
	if !hmac.Equal(a[:], b[:]) {
		return ErrInvalidAdminKey
	}
	return nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
// It returns ErrMissingToken when the header is absent.
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrInvalidToken
	}
	return strings.TrimSpace(token), nil
}

// JWTVerifier resolves HS256 bearer tokens to user IDs.
// The user ID is carried in the standard "sub" claim.
type JWTVerifier struct {
	secret []byte
	issuer string
}

func NewJWTVerifier(secret, issuer string) (*JWTVerifier, error) {
	if secret == "" {
		return nil, errors.New("JWT secret is required")
	}
	return &JWTVerifier{secret: []byte(secret), issuer: issuer}, nil
}

// IssueToken signs a token for userID that expires after ttl
func (v *JWTVerifier) IssueToken(userID string, ttl time.Duration) (string, error) {
	if userID == "" {
		return "", errors.New("user ID is required")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		Issuer:    v.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(v.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ResolveUser verifies token and returns its subject.
// Any parse, signature, expiry, or issuer failure returns ErrInvalidToken.
func (v *JWTVerifier) ResolveUser(token string) (string, error) {
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid || strings.TrimSpace(claims.Subject) == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
