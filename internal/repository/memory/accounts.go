// Package memory provides in-memory repository implementations.
// State is process-lifetime only; every store guards its map with a
// mutex so read-modify-write sequences are atomic with respect to
// concurrently handled requests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/stratovia/filebridge/internal/domain"
	"github.com/stratovia/filebridge/internal/repository"
)

// AccountStore implements repository.AccountRepository with an in-memory map.
type AccountStore struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
}

// NewAccountStore creates an empty AccountStore.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[string]*domain.Account),
	}
}

// Create creates a new account.
func (s *AccountStore) Create(ctx context.Context, account *domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.Username]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateUsername, account.Username)
	}

	// Store a copy so callers cannot mutate shared state.
	stored := *account
	s.accounts[account.Username] = &stored
	return nil
}

// GetByUsername retrieves an account by username.
func (s *AccountStore) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, exists := s.accounts[username]
	if !exists {
		return nil, domain.ErrAccountNotFound
	}

	result := *account
	return &result, nil
}

// MarkVerified sets the verified flag on an account.
func (s *AccountStore) MarkVerified(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, exists := s.accounts[username]
	if !exists {
		return domain.ErrAccountNotFound
	}

	account.Verified = true
	return nil
}

// ExistsByUsername checks if an account with the given username exists.
func (s *AccountStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.accounts[username]
	return exists, nil
}

// Ensure AccountStore implements repository.AccountRepository.
var _ repository.AccountRepository = (*AccountStore)(nil)
