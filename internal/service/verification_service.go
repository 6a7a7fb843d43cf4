// Package service provides business logic services for Filebridge.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stratovia/filebridge/internal/domain"
	"github.com/stratovia/filebridge/internal/notifier"
	"github.com/stratovia/filebridge/internal/pkg/crypto"
	"github.com/stratovia/filebridge/internal/repository"
)

// VerificationService owns the verification token lifecycle: issuing a
// single-use token at registration and redeeming it to mark the account
// verified. Token delivery is delegated to the notifier and is
// best-effort; its failure never fails the registration.
type VerificationService struct {
	accountRepo repository.AccountRepository
	tokenRepo   repository.VerificationTokenRepository
	notifier    notifier.Notifier
	logger      zerolog.Logger
}

// NewVerificationService creates a new VerificationService.
func NewVerificationService(
	accountRepo repository.AccountRepository,
	tokenRepo repository.VerificationTokenRepository,
	n notifier.Notifier,
	logger zerolog.Logger,
) *VerificationService {
	return &VerificationService{
		accountRepo: accountRepo,
		tokenRepo:   tokenRepo,
		notifier:    n,
		logger:      logger.With().Str("service", "verification").Logger(),
	}
}

// IssueInput contains the data needed to issue a verification token.
type IssueInput struct {
	Username string
	Email    string
}

// IssueOutput contains the result of issuing a verification token.
type IssueOutput struct {
	Token string
}

// Issue generates a verification token for a freshly registered account,
// records it in the live set, and hands it to the notifier. Called
// exactly once per registration; re-registration of an existing username
// is rejected upstream, so at most one live token maps to an account.
//
// The notifier runs after the token is recorded and outside any store
// lock. A delivery failure is logged and swallowed: the token remains
// redeemable regardless.
func (s *VerificationService) Issue(ctx context.Context, input IssueInput) (*IssueOutput, error) {
	token, err := crypto.GenerateVerificationToken()
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to generate verification token")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if err := s.tokenRepo.Put(ctx, token, input.Username); err != nil {
		s.logger.Error().Err(err).Str("username", input.Username).Msg("failed to record verification token")
		return nil, fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	if err := s.notifier.Send(ctx, input.Email, token); err != nil {
		s.logger.Error().
			Err(err).
			Str("username", input.Username).
			Str("email", input.Email).
			Msg("verification token delivery failed")
	} else {
		s.logger.Info().
			Str("username", input.Username).
			Msg("verification token issued")
	}

	return &IssueOutput{Token: token}, nil
}

// Redeem atomically removes the token from the live set and marks the
// mapped account verified. Redemption is exactly-once: a token that was
// already redeemed, or never issued, fails with
// domain.ErrInvalidOrExpiredToken, and the two cases are not
// distinguishable by the caller.
func (s *VerificationService) Redeem(ctx context.Context, token string) (string, error) {
	username, err := s.tokenRepo.Take(ctx, token)
	if err != nil {
		return "", domain.ErrInvalidOrExpiredToken
	}

	if err := s.accountRepo.MarkVerified(ctx, username); err != nil {
		// The account disappearing between issue and redeem should not
		// happen (accounts are never deleted), but a stale token must
		// still fail like any other invalid token.
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.logger.Warn().Str("username", username).Msg("verification token maps to missing account")
			return "", domain.ErrInvalidOrExpiredToken
		}
		s.logger.Error().Err(err).Str("username", username).Msg("failed to mark account verified")
		return "", fmt.Errorf("%w: %v", ErrInternalError, err)
	}

	s.logger.Info().Str("username", username).Msg("account verified")
	return username, nil
}
