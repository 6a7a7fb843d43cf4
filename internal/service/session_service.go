// Package service provides business logic services for Filebridge.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stratovia/filebridge/internal/domain"
	"github.com/stratovia/filebridge/internal/repository"
)

// SessionService issues opaque session tokens on login and resolves
// presented tokens back to accounts. Tokens live until process end:
// there is no expiry, logout, or revocation in this design, and each
// login mints a fresh token without invalidating earlier ones.
type SessionService struct {
	accounts    *AccountService
	sessionRepo repository.SessionRepository
	logger      zerolog.Logger
}

// NewSessionService creates a new SessionService.
func NewSessionService(accounts *AccountService, sessionRepo repository.SessionRepository, logger zerolog.Logger) *SessionService {
	return &SessionService{
		accounts:    accounts,
		sessionRepo: sessionRepo,
		logger:      logger.With().Str("service", "session").Logger(),
	}
}

// LoginInput contains the credentials presented at login.
type LoginInput struct {
	Username string
	Password string
}

// LoginOutput contains the result of a successful login.
type LoginOutput struct {
	Token string
}

// Login checks credentials and mints a new session token.
// Bad credentials return domain.ErrInvalidCredentials; valid credentials
// on an unverified account return domain.ErrNotVerified. The distinction
// is deliberate: the second tells the user to check email rather than
// retry a password.
func (s *SessionService) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	account, err := s.accounts.Authenticate(ctx, input.Username, input.Password)
	if err != nil {
		return nil, err
	}

	if !account.CanLogin() {
		s.logger.Debug().Str("username", account.Username).Msg("unverified account attempted login")
		return nil, domain.ErrNotVerified
	}

	token := uuid.NewString()
	if err := s.sessionRepo.Put(ctx, token, account.Username); err != nil {
		s.logger.Error().Err(err).Str("username", account.Username).Msg("failed to record session")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Str("username", account.Username).Msg("session issued")
	return &LoginOutput{Token: token}, nil
}

// Resolve maps a session token back to its account. Unknown tokens fail
// with domain.ErrUnauthenticated. Verification is monotonic so a resolved
// account should always be verified, but the contract holds even if that
// ever regressed: an unverified account resolves to ErrUnauthenticated.
func (s *SessionService) Resolve(ctx context.Context, token string) (*domain.Account, error) {
	username, err := s.sessionRepo.Get(ctx, token)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}

	account, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.logger.Warn().Str("username", username).Msg("session maps to missing account")
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if !account.Verified {
		return nil, domain.ErrUnauthenticated
	}

	return account, nil
}
