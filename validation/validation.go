// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError describes one field that failed validation.
// Field is the JSON name of the field, e.g. "votes[2].rank".
type FieldError struct {
	Field string
	Tag   string
	Param string
}

func (e FieldError) Error() string {
	switch e.Tag {
	case "required":
		return e.Field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Field, e.Param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", e.Field, e.Param)
	case "url":
		return e.Field + " must be a valid URL"
	default:
		return fmt.Sprintf("%s failed %s validation", e.Field, e.Tag)
	}
}

// Error is returned by Struct when one or more fields are invalid.
type Error struct {
	Fields []FieldError
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	messages := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		messages[i] = f.Error()
	}
	return strings.Join(messages, "; ")
}

// Validator returns the shared validator instance.
// Field names in errors come from json tags.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Struct validates v against its validate tags.
// It returns nil or an *Error.
func Struct(v any) error {
	err := Validator().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	root := reflect.Indirect(reflect.ValueOf(v)).Type().Name()
	out := &Error{Fields: make([]FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fieldPath(fe.Namespace(), root),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}

// fieldPath drops the root struct name from a validator namespace
// ("slate.votes[0].rank" -> "votes[0].rank"). Anonymous structs have no
// root name, so their namespace is already a field path.
func fieldPath(namespace, root string) string {
	if root == "" {
		return namespace
	}
	return strings.TrimPrefix(namespace, root+".")
}
