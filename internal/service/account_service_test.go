package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/stratovia/filebridge/internal/domain"
)

func TestAccountService_Register(t *testing.T) {
	tests := []struct {
		name      string
		input     RegisterInput
		wantErr   error
		setupRepo func(*MockAccountRepository)
	}{
		{
			name: "success operator",
			input: RegisterInput{
				Username: "alice",
				Password: "pw1",
				Email:    "alice@example.com",
				Role:     domain.RoleOperator,
			},
		},
		{
			name: "success client",
			input: RegisterInput{
				Username: "bob",
				Password: "pw2",
				Email:    "bob@example.com",
				Role:     domain.RoleClient,
			},
		},
		{
			name: "empty username",
			input: RegisterInput{
				Password: "pw",
				Email:    "x@example.com",
				Role:     domain.RoleClient,
			},
			wantErr: ErrInvalidUsername,
		},
		{
			name: "empty password",
			input: RegisterInput{
				Username: "dave",
				Email:    "dave@example.com",
				Role:     domain.RoleClient,
			},
			wantErr: ErrInvalidPassword,
		},
		{
			name: "malformed email",
			input: RegisterInput{
				Username: "eve",
				Password: "pw",
				Email:    "not-an-email",
				Role:     domain.RoleClient,
			},
			wantErr: ErrInvalidEmail,
		},
		{
			name: "invalid role",
			input: RegisterInput{
				Username: "mallory",
				Password: "pw",
				Email:    "mallory@example.com",
				Role:     domain.Role("admin"),
			},
			wantErr: domain.ErrInvalidRole,
		},
		{
			name: "duplicate username",
			input: RegisterInput{
				Username: "taken",
				Password: "pw",
				Email:    "taken@example.com",
				Role:     domain.RoleClient,
			},
			wantErr: domain.ErrDuplicateUsername,
			setupRepo: func(m *MockAccountRepository) {
				m.accounts["taken"] = &domain.Account{Username: "taken"}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewMockAccountRepository()
			if tt.setupRepo != nil {
				tt.setupRepo(repo)
			}

			svc := NewAccountService(repo, zerolog.Nop())

			output, err := svc.Register(context.Background(), tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if output.Account.Verified {
				t.Error("new account must start unverified")
			}
			if output.Account.PasswordHash == tt.input.Password {
				t.Error("password stored in plaintext")
			}
			if err := bcrypt.CompareHashAndPassword([]byte(output.Account.PasswordHash), []byte(tt.input.Password)); err != nil {
				t.Errorf("stored hash does not match password: %v", err)
			}
		})
	}
}

func TestAccountService_Authenticate(t *testing.T) {
	ctx := context.Background()
	repo := NewMockAccountRepository()
	svc := NewAccountService(repo, zerolog.Nop())

	if _, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Password: "correct-horse",
		Email:    "alice@example.com",
		Role:     domain.RoleOperator,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "success", username: "alice", password: "correct-horse"},
		{name: "wrong password", username: "alice", password: "wrong", wantErr: domain.ErrInvalidCredentials},
		{name: "unknown username", username: "ghost", password: "whatever", wantErr: domain.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			account, err := svc.Authenticate(ctx, tt.username, tt.password)

			if tt.wantErr != nil {
				// Unknown user and wrong password must be indistinguishable.
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if account.Username != tt.username {
				t.Errorf("expected %s, got %s", tt.username, account.Username)
			}
		})
	}
}
