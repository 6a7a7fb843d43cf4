// Package domain contains the core business entities for Filebridge.
package domain

import (
	"errors"
	"fmt"
)

// Domain errors - these represent business rule violations.
// They are distinct from infrastructure errors (storage, network, etc.)
// and all map to a client-facing status at the HTTP boundary.

var (
	// ===========================================
	// Account Errors
	// ===========================================

	// ErrAccountNotFound indicates the requested account does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrDuplicateUsername indicates an account with the same username exists.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrInvalidRole indicates the role is not one of the known roles.
	ErrInvalidRole = errors.New("invalid role")

	// ErrInvalidCredentials indicates authentication failed.
	// Unknown username and wrong password deliberately collapse into this
	// one error so callers cannot probe for account existence.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotVerified indicates the account has not redeemed its
	// verification token yet. Distinct from ErrInvalidCredentials: it
	// tells the user to check email rather than retry a password.
	ErrNotVerified = errors.New("account is not verified")

	// ===========================================
	// Token Errors
	// ===========================================

	// ErrInvalidOrExpiredToken indicates the verification token does not
	// exist in the live set. A token that was already redeemed and one
	// that was never issued report identically.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired verification token")

	// ErrUnauthenticated indicates the session token is missing, malformed,
	// or unknown (HTTP 401 semantics).
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden indicates the authenticated account lacks the required
	// role (HTTP 403 semantics). Distinct from ErrUnauthenticated since it
	// changes client retry behavior.
	ErrForbidden = errors.New("forbidden")

	// ===========================================
	// File Errors
	// ===========================================

	// ErrInvalidLink indicates the download link could not be decoded.
	ErrInvalidLink = errors.New("invalid or corrupted download link")

	// ErrFileNotFound indicates the requested file does not exist.
	ErrFileNotFound = errors.New("file not found")

	// ErrUnsupportedFileType indicates the file extension is not in the
	// allowed set of document types.
	ErrUnsupportedFileType = errors.New("unsupported file type")
)

// DomainError wraps a domain error with additional context.
type DomainError struct {
	// Err is the underlying domain error.
	Err error

	// Message provides additional context.
	Message string

	// Resource identifies the affected resource (e.g., username, filename).
	Resource string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Resource != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Err.Error(), e.Message, e.Resource)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/errors.As.
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError with context.
func NewDomainError(err error, message, resource string) *DomainError {
	return &DomainError{
		Err:      err,
		Message:  message,
		Resource: resource,
	}
}
