// Package service provides business logic services for Filebridge.
package service

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/stratovia/filebridge/internal/domain"
	"github.com/stratovia/filebridge/internal/repository"
)

// AccountService handles account registration and credential checking.
type AccountService struct {
	accountRepo repository.AccountRepository
	logger      zerolog.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo repository.AccountRepository, logger zerolog.Logger) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		logger:      logger.With().Str("service", "account").Logger(),
	}
}

// RegisterInput contains the data needed to register an account.
type RegisterInput struct {
	Username string
	Password string
	Email    string
	Role     domain.Role
}

// RegisterOutput contains the result of registering an account.
type RegisterOutput struct {
	Account *domain.Account
}

// Register creates a new, unverified account.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error) {
	if err := s.validateRegisterInput(input); err != nil {
		return nil, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("%w: failed to hash password", ErrInternalError)
	}

	account := domain.NewAccount(input.Username, input.Email, string(passwordHash), input.Role)

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("username", account.Username).
		Str("role", string(account.Role)).
		Msg("account registered")

	return &RegisterOutput{Account: account}, nil
}

// Authenticate verifies account credentials and returns the account.
// Unknown usernames and wrong passwords report the same error so the
// response never reveals which half was wrong.
func (s *AccountService) Authenticate(ctx context.Context, username, password string) (*domain.Account, error) {
	account, err := s.accountRepo.GetByUsername(ctx, username)
	if err != nil {
		// Log but don't expose whether the username exists.
		s.logger.Debug().Str("username", username).Msg("account not found during authentication")
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		s.logger.Debug().Str("username", username).Msg("invalid password during authentication")
		return nil, domain.ErrInvalidCredentials
	}

	return account, nil
}

// GetByUsername retrieves an account by username.
func (s *AccountService) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return s.accountRepo.GetByUsername(ctx, username)
}

// validateRegisterInput validates the input for registering an account.
func (s *AccountService) validateRegisterInput(input RegisterInput) error {
	if input.Username == "" {
		return ErrInvalidUsername
	}

	if input.Password == "" {
		return ErrInvalidPassword
	}

	if _, err := mail.ParseAddress(input.Email); err != nil {
		return ErrInvalidEmail
	}

	if !input.Role.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidRole, input.Role)
	}

	return nil
}
