package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/stratovia/filebridge/internal/domain"
)

// registerAccount seeds the repo through the real registration path so
// the stored hash matches the password.
func registerAccount(t *testing.T, accounts *AccountService, username, password string, role domain.Role, verified bool, repo *MockAccountRepository) {
	t.Helper()

	_, err := accounts.Register(context.Background(), RegisterInput{
		Username: username,
		Password: password,
		Email:    username + "@example.com",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if verified {
		repo.accounts[username].Verified = true
	}
}

func TestSessionService_Login(t *testing.T) {
	ctx := context.Background()
	repo := NewMockAccountRepository()
	accounts := NewAccountService(repo, zerolog.Nop())
	svc := NewSessionService(accounts, NewMockSessionRepository(), zerolog.Nop())

	registerAccount(t, accounts, "alice", "pw1", domain.RoleOperator, true, repo)
	registerAccount(t, accounts, "pending", "pw2", domain.RoleClient, false, repo)

	tests := []struct {
		name    string
		input   LoginInput
		wantErr error
	}{
		{name: "success", input: LoginInput{Username: "alice", Password: "pw1"}},
		{name: "wrong password", input: LoginInput{Username: "alice", Password: "nope"}, wantErr: domain.ErrInvalidCredentials},
		{name: "unknown username", input: LoginInput{Username: "ghost", Password: "pw"}, wantErr: domain.ErrInvalidCredentials},
		{name: "unverified account", input: LoginInput{Username: "pending", Password: "pw2"}, wantErr: domain.ErrNotVerified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output, err := svc.Login(ctx, tt.input)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if output.Token == "" {
				t.Error("expected a non-empty session token")
			}
		})
	}
}

func TestSessionService_LoginMintsFreshTokens(t *testing.T) {
	ctx := context.Background()
	repo := NewMockAccountRepository()
	accounts := NewAccountService(repo, zerolog.Nop())
	sessions := NewMockSessionRepository()
	svc := NewSessionService(accounts, sessions, zerolog.Nop())

	registerAccount(t, accounts, "alice", "pw1", domain.RoleOperator, true, repo)

	first, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "pw1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "pw1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.Token == second.Token {
		t.Error("expected each login to mint a distinct token")
	}

	// Both tokens stay valid.
	for _, token := range []string{first.Token, second.Token} {
		account, err := svc.Resolve(ctx, token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if account.Username != "alice" {
			t.Errorf("expected alice, got %s", account.Username)
		}
	}
}

func TestSessionService_Resolve(t *testing.T) {
	ctx := context.Background()
	repo := NewMockAccountRepository()
	accounts := NewAccountService(repo, zerolog.Nop())
	sessions := NewMockSessionRepository()
	svc := NewSessionService(accounts, sessions, zerolog.Nop())

	registerAccount(t, accounts, "alice", "pw1", domain.RoleOperator, true, repo)

	output, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "pw1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	account, err := svc.Resolve(ctx, output.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if account.Username != "alice" || account.Role != domain.RoleOperator {
		t.Errorf("unexpected account: %+v", account)
	}

	if _, err := svc.Resolve(ctx, "not-a-session"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}

	// A session whose account vanished resolves to unauthenticated.
	sessions.sessions["orphan"] = "ghost"
	if _, err := svc.Resolve(ctx, "orphan"); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("expected ErrUnauthenticated, got %v", err)
	}
}
