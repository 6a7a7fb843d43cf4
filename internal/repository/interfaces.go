// Package repository defines data access interfaces for Filebridge.
// These interfaces abstract the account, verification-token, and session
// stores, allowing different implementations (in-memory, future persistent
// backends) while keeping the service layer clean.
package repository

import (
	"context"

	"github.com/stratovia/filebridge/internal/domain"
)

// =============================================================================
// Account Repository
// =============================================================================

// AccountRepository defines the interface for account data access.
type AccountRepository interface {
	// Create creates a new account. Returns domain.ErrDuplicateUsername
	// if the username is already taken.
	Create(ctx context.Context, account *domain.Account) error

	// GetByUsername retrieves an account by username.
	// Returns domain.ErrAccountNotFound if absent.
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)

	// MarkVerified sets the verified flag on an account.
	// Verification is monotonic: there is no operation that clears it.
	MarkVerified(ctx context.Context, username string) error

	// ExistsByUsername checks if an account with the given username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// =============================================================================
// Verification Token Repository
// =============================================================================

// VerificationTokenRepository defines the interface for the live set of
// single-use verification tokens.
type VerificationTokenRepository interface {
	// Put records token -> username.
	Put(ctx context.Context, token, username string) error

	// Take atomically removes the token from the live set and returns the
	// mapped username. A token that was already taken (or never put)
	// returns domain.ErrInvalidOrExpiredToken; a concurrent second Take of
	// the same token must not also succeed.
	Take(ctx context.Context, token string) (string, error)
}

// =============================================================================
// Session Repository
// =============================================================================

// SessionRepository defines the interface for the session token store.
// Sessions live until process end; there is no expiry or logout.
type SessionRepository interface {
	// Put records token -> username. Multiple tokens may map to the same
	// username; earlier tokens stay valid.
	Put(ctx context.Context, token, username string) error

	// Get returns the username a session token maps to.
	// Returns domain.ErrUnauthenticated if the token is unknown.
	Get(ctx context.Context, token string) (string, error)
}
