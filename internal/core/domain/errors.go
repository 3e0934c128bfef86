package domain

import (
	"errors"
	"fmt"
)

// ErrUnauthorized is the single externally observable outcome of a failed
// authentication. Every AuthError unwraps to it.
var ErrUnauthorized = errors.New("could not validate credentials")

// ErrForbidden is the outcome of a failed authorization. Every AuthzError
// unwraps to it.
var ErrForbidden = errors.New("operation not permitted")

// ValidationError reports a payload field, or a cross-field rule when Field
// is empty, that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// AuthErrorKind distinguishes authentication failures for diagnostics only.
type AuthErrorKind string

const (
	AuthInvalidToken  AuthErrorKind = "invalid_token"
	AuthMissingClaims AuthErrorKind = "missing_claims"
)

// AuthError means a credential could not be resolved to an Identity.
type AuthError struct {
	Kind AuthErrorKind
	Err  error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *AuthError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUnauthorized}
	}
	return []error{ErrUnauthorized, e.Err}
}

// AuthzError means the identity was resolved but its role is not allowed.
type AuthzError struct {
	Role Role
}

func (e *AuthzError) Error() string {
	return fmt.Sprintf("role %q: %v", e.Role, ErrForbidden)
}

func (e *AuthzError) Unwrap() error { return ErrForbidden }
