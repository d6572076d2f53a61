// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrValidation = errors.New("validation")
	ErrAuth       = errors.New("auth")
	ErrNotFound   = errors.New("not_found")
	ErrConflict   = errors.New("conflict")
	ErrStorage    = errors.New("storage")
)

// Error carries a kind, a client-facing message and an optional cause.
// The cause is never shown to clients.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// KindOf returns the kind name of err ("validation", "auth", ...).
// Errors that did not come from this package report "storage".
func KindOf(err error) string {
	for _, kind := range []error{ErrValidation, ErrAuth, ErrNotFound, ErrConflict, ErrStorage} {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return ErrStorage.Error()
}

// MessageOf returns the client-facing message of err
func MessageOf(err error) string {
	var verr *Error
	if errors.As(err, &verr) {
		return verr.Message
	}
	return "internal error"
}

func validationError(format string, args ...any) error {
	return &Error{Kind: ErrValidation, Message: fmt.Sprintf(format, args...)}
}

func authError(message string, cause error) error {
	return &Error{Kind: ErrAuth, Message: message, Err: cause}
}

func notFoundError(format string, args ...any) error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf(format, args...)}
}

func conflictError(format string, args ...any) error {
	return &Error{Kind: ErrConflict, Message: fmt.Sprintf(format, args...)}
}

func storageError(op string, cause error) error {
	message := "storage failure during " + op
	if errors.Is(cause, context.DeadlineExceeded) {
		message = "storage timed out during " + op
	}
	return &Error{Kind: ErrStorage, Message: message, Err: cause}
}
