package memory

import (
	"context"
	"sync"

	"github.com/stratovia/filebridge/internal/domain"
	"github.com/stratovia/filebridge/internal/repository"
)

// VerificationTokenStore implements repository.VerificationTokenRepository
// with an in-memory map. Take deletes under the write lock, so a token can
// be redeemed exactly once even under concurrent redemption attempts.
type VerificationTokenStore struct {
	mu     sync.Mutex
	tokens map[string]string
}

// NewVerificationTokenStore creates an empty VerificationTokenStore.
func NewVerificationTokenStore() *VerificationTokenStore {
	return &VerificationTokenStore{
		tokens: make(map[string]string),
	}
}

// Put records token -> username.
func (s *VerificationTokenStore) Put(ctx context.Context, token, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tokens[token] = username
	return nil
}

// Take atomically removes the token and returns the mapped username.
func (s *VerificationTokenStore) Take(ctx context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	username, exists := s.tokens[token]
	if !exists {
		return "", domain.ErrInvalidOrExpiredToken
	}

	delete(s.tokens, token)
	return username, nil
}

// SessionStore implements repository.SessionRepository with an in-memory map.
// Tokens live until process end; multiple tokens may map to one username.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]string
}

// NewSessionStore creates an empty SessionStore.
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]string),
	}
}

// Put records token -> username.
func (s *SessionStore) Put(ctx context.Context, token, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[token] = username
	return nil
}

// Get returns the username a session token maps to.
func (s *SessionStore) Get(ctx context.Context, token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	username, exists := s.sessions[token]
	if !exists {
		return "", domain.ErrUnauthenticated
	}
	return username, nil
}

// Ensure the stores implement their repository interfaces.
var (
	_ repository.VerificationTokenRepository = (*VerificationTokenStore)(nil)
	_ repository.SessionRepository           = (*SessionStore)(nil)
)
