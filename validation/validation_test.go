// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validation

import (
	"errors"
	"testing"
)

type entry struct {
	MovieID string `json:"movieId" validate:"required"`
	Rank    *int   `json:"rank" validate:"required,min=1"`
}

type slate struct {
	SessionID string  `json:"sessionId" validate:"required"`
	Votes     []entry `json:"votes" validate:"required,min=1,dive"`
}

func intPtr(v int) *int { return &v }

func TestStruct(t *testing.T) {
	tests := []struct {
		name       string
		input      slate
		wantFields []string
	}{
		{
			name:  "valid",
			input: slate{SessionID: "s", Votes: []entry{{MovieID: "m", Rank: intPtr(1)}}},
		},
		{
			name:       "missing session",
			input:      slate{Votes: []entry{{MovieID: "m", Rank: intPtr(1)}}},
			wantFields: []string{"sessionId"},
		},
		{
			name:       "empty votes",
			input:      slate{SessionID: "s", Votes: []entry{}},
			wantFields: []string{"votes"},
		},
		{
			name:       "missing rank",
			input:      slate{SessionID: "s", Votes: []entry{{MovieID: "m"}}},
			wantFields: []string{"votes[0].rank"},
		},
		{
			name:       "zero rank",
			input:      slate{SessionID: "s", Votes: []entry{{MovieID: "m", Rank: intPtr(0)}}},
			wantFields: []string{"votes[0].rank"},
		},
		{
			name:       "missing movie and rank",
			input:      slate{SessionID: "s", Votes: []entry{{MovieID: "m", Rank: intPtr(2)}, {}}},
			wantFields: []string{"votes[1].movieId", "votes[1].rank"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.input)
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}

			var verr *Error
			if !errors.As(err, &verr) {
				t.Fatalf("expected *Error, got %v", err)
			}
			if len(verr.Fields) != len(tt.wantFields) {
				t.Fatalf("expected %d field errors, got %d: %v", len(tt.wantFields), len(verr.Fields), verr)
			}
			for i, want := range tt.wantFields {
				if verr.Fields[i].Field != want {
					t.Errorf("field %d: expected %s, got %s", i, want, verr.Fields[i].Field)
				}
			}
		})
	}
}

func TestStructAnonymous(t *testing.T) {
	input := struct {
		Votes []entry `json:"votes" validate:"dive"`
	}{Votes: []entry{{MovieID: "a", Rank: intPtr(1)}, {MovieID: "b"}}}

	err := Struct(input)
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if len(verr.Fields) != 1 || verr.Fields[0].Field != "votes[1].rank" {
		t.Errorf("expected votes[1].rank, got %v", verr)
	}
}

func TestStructPointer(t *testing.T) {
	err := Struct(&slate{Votes: []entry{{Rank: intPtr(1)}}})
	var verr *Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if len(verr.Fields) != 2 || verr.Fields[0].Field != "sessionId" || verr.Fields[1].Field != "votes[0].movieId" {
		t.Errorf("expected sessionId and votes[0].movieId, got %v", verr)
	}
}

func TestFieldErrorMessages(t *testing.T) {
	tests := []struct {
		fe   FieldError
		want string
	}{
		{FieldError{Field: "name", Tag: "required"}, "name is required"},
		{FieldError{Field: "year", Tag: "min", Param: "1870"}, "year must be at least 1870"},
		{FieldError{Field: "rating", Tag: "max", Param: "10"}, "rating must be at most 10"},
		{FieldError{Field: "poster", Tag: "url"}, "poster must be a valid URL"},
	}

	for _, tt := range tests {
		if got := tt.fe.Error(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}
