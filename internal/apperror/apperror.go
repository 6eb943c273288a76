// Package apperror defines the error taxonomy shared by the services and mapped
// to HTTP status codes at the API boundary.
package apperror

import (
	"errors"
	"fmt"
	"strings"
)

// AuthFailure names why a request could not be authenticated.
type AuthFailure string

const (
	MissingToken       AuthFailure = "missing_token"
	Malformed          AuthFailure = "malformed"
	Expired            AuthFailure = "expired"
	Stale              AuthFailure = "stale"
	InvalidCredentials AuthFailure = "invalid_credentials"
)

// AuthenticationError is returned when a token or credential is rejected.
type AuthenticationError struct {
	Reason AuthFailure
	Err    error
}

func (e *AuthenticationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("authentication failed (%s)", e.Reason)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// Authentication builds an AuthenticationError for reason.
func Authentication(reason AuthFailure, err error) error {
	return &AuthenticationError{Reason: reason, Err: err}
}

// FieldError is one failed field check.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field check that failed for a request.
type ValidationError struct {
	Details []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, d.Field+": "+d.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Validation builds a ValidationError with a single field detail.
func Validation(field, message string) error {
	return &ValidationError{Details: []FieldError{{Field: field, Message: message}}}
}

// ConflictError is returned when a unique value is already taken.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// Conflict builds a ConflictError.
func Conflict(message string) error {
	return &ConflictError{Message: message}
}

// NotFoundError is returned when a resource is absent or belongs to another account.
// The two causes are deliberately not distinguished.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

// NotFound builds a NotFoundError for resource.
func NotFound(resource string) error {
	return &NotFoundError{Resource: resource}
}

// StoreError wraps a failure of the durable store: connectivity, timeout or an
// unclassified constraint violation.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return fmt.Sprintf("store %s: %v", e.Op, e.Err) }

func (e *StoreError) Unwrap() error { return e.Err }

// Store wraps err as a StoreError unless it is already classified.
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	if Classified(err) {
		return err
	}
	return &StoreError{Op: op, Err: err}
}

// Classified reports whether err already belongs to the taxonomy.
func Classified(err error) bool {
	var (
		authErr     *AuthenticationError
		validErr    *ValidationError
		conflictErr *ConflictError
		notFoundErr *NotFoundError
		storeErr    *StoreError
	)
	return errors.As(err, &authErr) ||
		errors.As(err, &validErr) ||
		errors.As(err, &conflictErr) ||
		errors.As(err, &notFoundErr) ||
		errors.As(err, &storeErr)
}
