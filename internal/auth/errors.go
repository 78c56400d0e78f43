package auth

import (
	"errors"
	"net/http"

	apperrors "github.com/spec-kit/nutrisense/pkg/util"
)

// Authentication failures. Every one of them is an expected rejection and
// surfaces as 401, except the signup errors: ErrDuplicateEmail is a 409 conflict
// and ErrPasswordTooLong a 400.
var (
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrMalformed          = errors.New("malformed token")
	ErrInvalidSignature   = errors.New("invalid token signature")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrPasswordTooLong    = errors.New("password too long")
)

type errorSpec struct {
	code    string
	message string
	status  int
}

var errorSpecs = []struct {
	err  error
	spec errorSpec
}{
	{ErrUnauthenticated, errorSpec{"UNAUTHENTICATED", "Not authenticated", http.StatusUnauthorized}},
	{ErrMalformed, errorSpec{"TOKEN_MALFORMED", "Invalid token", http.StatusUnauthorized}},
	{ErrInvalidSignature, errorSpec{"TOKEN_INVALID_SIGNATURE", "Invalid token signature", http.StatusUnauthorized}},
	{ErrTokenExpired, errorSpec{"TOKEN_EXPIRED", "Token expired, please login again.", http.StatusUnauthorized}},
	{ErrTokenRevoked, errorSpec{"TOKEN_REVOKED", "Token revoked, please login again.", http.StatusUnauthorized}},
	{ErrUserNotFound, errorSpec{"USER_NOT_FOUND", "User not found", http.StatusUnauthorized}},
	{ErrInvalidCredentials, errorSpec{"INVALID_CREDENTIALS", "Invalid email or password", http.StatusUnauthorized}},
	{ErrDuplicateEmail, errorSpec{"EMAIL_TAKEN", "Email already registered", http.StatusConflict}},
	{ErrPasswordTooLong, errorSpec{"VALIDATION_FAILED", "Password must be at most 72 bytes", http.StatusBadRequest}},
}

// ToDomainError converts an authentication failure into the HTTP-facing error.
// Errors outside the auth taxonomy (storage faults) are returned unchanged so they
// render as internal errors rather than credential problems.
func ToDomainError(err error) error {
	if err == nil {
		return nil
	}
	for _, entry := range errorSpecs {
		if errors.Is(err, entry.err) {
			return &apperrors.DomainError{
				Code:       entry.spec.code,
				Message:    entry.spec.message,
				HTTPStatus: entry.spec.status,
				Err:        entry.err,
			}
		}
	}
	return err
}

// IsAuthError reports whether err belongs to the authentication taxonomy.
func IsAuthError(err error) bool {
	for _, entry := range errorSpecs {
		if errors.Is(err, entry.err) {
			return true
		}
	}
	return false
}
