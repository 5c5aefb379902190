// Package apperr defines the error taxonomy shared by services and the HTTP layer.
// Every failure that crosses the service boundary is classified into a Kind so
// the API layer can map it to a status code without inspecting store internals.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies an error for HTTP mapping.
type Kind string

const (
	// KindValidation covers request input that failed schema validation.
	KindValidation Kind = "validation"
	// KindUnauthorized covers missing or unverifiable credentials.
	KindUnauthorized Kind = "unauthorized"
	// KindForbidden covers both denied permissions and business uniqueness
	// violations (duplicate username). The pairing is intentional.
	KindForbidden Kind = "forbidden"
	// KindNotFound covers missing parents and, when requested, missing children.
	KindNotFound Kind = "not_found"
	// KindUpstream covers persistence failures passed through unclassified.
	KindUpstream Kind = "upstream"
)

// Violation names one invalid input field and why it was rejected.
type Violation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Error is the service-boundary error carrying a Kind and optional field
// violations. It wraps the underlying cause when there is one.
type Error struct {
	Kind       Kind
	Message    string
	Violations []Violation
	cause      error
}

func (e *Error) Error() string {
	if len(e.Violations) == 0 {
		return e.Message
	}
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("%s: %s", v.Field, v.Reason))
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

func (e *Error) Unwrap() error { return e.cause }

// Validation builds a 400-class error from accumulated field violations.
func Validation(violations []Violation) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Violations: violations}
}

// Unauthorized builds a 401-class error.
func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// Forbidden builds a 403-class error.
func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// NotFound builds a 404-class error naming the missing entity.
func NotFound(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

// Upstream wraps a persistence-layer failure, preserving the original message.
func Upstream(err error) *Error {
	return &Error{Kind: KindUpstream, Message: err.Error(), cause: err}
}

// KindOf extracts the Kind from err, or KindUpstream for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUpstream
}

// Status maps a Kind to its HTTP status code.
func Status(k Kind) int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

// IsNotFound reports whether err is a NotFound classification.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }
