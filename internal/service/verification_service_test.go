package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/stratovia/filebridge/internal/domain"
)

func TestVerificationService_IssueAndRedeem(t *testing.T) {
	ctx := context.Background()
	accountRepo := NewMockAccountRepository()
	tokenRepo := NewMockTokenRepository()
	mailer := &MockNotifier{}

	accountRepo.accounts["alice"] = &domain.Account{
		Username: "alice",
		Email:    "alice@example.com",
		Role:     domain.RoleOperator,
	}

	svc := NewVerificationService(accountRepo, tokenRepo, mailer, zerolog.Nop())

	issued, err := svc.Issue(ctx, IssueInput{Username: "alice", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if issued.Token == "" {
		t.Fatal("expected a non-empty token")
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(mailer.sent))
	}
	if mailer.sent[0].email != "alice@example.com" || mailer.sent[0].token != issued.Token {
		t.Errorf("unexpected delivery: %+v", mailer.sent[0])
	}

	username, err := svc.Redeem(ctx, issued.Token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if username != "alice" {
		t.Errorf("expected alice, got %s", username)
	}
	if !accountRepo.accounts["alice"].Verified {
		t.Error("expected account to be verified after redemption")
	}
}

func TestVerificationService_RedeemExactlyOnce(t *testing.T) {
	ctx := context.Background()
	accountRepo := NewMockAccountRepository()
	tokenRepo := NewMockTokenRepository()

	accountRepo.accounts["alice"] = &domain.Account{Username: "alice"}

	svc := NewVerificationService(accountRepo, tokenRepo, &MockNotifier{}, zerolog.Nop())

	issued, err := svc.Issue(ctx, IssueInput{Username: "alice", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Redeem(ctx, issued.Token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The same token again fails like a token that never existed.
	if _, err := svc.Redeem(ctx, issued.Token); !errors.Is(err, domain.ErrInvalidOrExpiredToken) {
		t.Errorf("expected ErrInvalidOrExpiredToken, got %v", err)
	}
}

func TestVerificationService_RedeemUnknownToken(t *testing.T) {
	svc := NewVerificationService(NewMockAccountRepository(), NewMockTokenRepository(), &MockNotifier{}, zerolog.Nop())

	_, err := svc.Redeem(context.Background(), "never-issued")
	if !errors.Is(err, domain.ErrInvalidOrExpiredToken) {
		t.Errorf("expected ErrInvalidOrExpiredToken, got %v", err)
	}
}

func TestVerificationService_DeliveryFailureDoesNotFailIssue(t *testing.T) {
	ctx := context.Background()
	accountRepo := NewMockAccountRepository()
	tokenRepo := NewMockTokenRepository()
	mailer := &MockNotifier{sendErr: errors.New("smtp unreachable")}

	accountRepo.accounts["alice"] = &domain.Account{Username: "alice"}

	svc := NewVerificationService(accountRepo, tokenRepo, mailer, zerolog.Nop())

	issued, err := svc.Issue(ctx, IssueInput{Username: "alice", Email: "alice@example.com"})
	if err != nil {
		t.Fatalf("expected issue to succeed despite delivery failure, got %v", err)
	}

	// The token is live and redeemable even though delivery failed.
	if _, err := svc.Redeem(ctx, issued.Token); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
