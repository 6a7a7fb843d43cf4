package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/stratovia/filebridge/internal/domain"
)

// MockAccountRepository is a mock implementation of repository.AccountRepository.
type MockAccountRepository struct {
	accounts  map[string]*domain.Account
	createErr error
	getErr    error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.accounts[account.Username]; exists {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateUsername, account.Username)
	}
	stored := *account
	m.accounts[account.Username] = &stored
	return nil
}

func (m *MockAccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	account, exists := m.accounts[username]
	if !exists {
		return nil, domain.ErrAccountNotFound
	}
	result := *account
	return &result, nil
}

func (m *MockAccountRepository) MarkVerified(ctx context.Context, username string) error {
	account, exists := m.accounts[username]
	if !exists {
		return domain.ErrAccountNotFound
	}
	account.Verified = true
	return nil
}

func (m *MockAccountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, exists := m.accounts[username]
	return exists, nil
}

// MockTokenRepository is a mock implementation of repository.VerificationTokenRepository.
type MockTokenRepository struct {
	tokens map[string]string
	putErr error
}

func NewMockTokenRepository() *MockTokenRepository {
	return &MockTokenRepository{tokens: make(map[string]string)}
}

func (m *MockTokenRepository) Put(ctx context.Context, token, username string) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.tokens[token] = username
	return nil
}

func (m *MockTokenRepository) Take(ctx context.Context, token string) (string, error) {
	username, exists := m.tokens[token]
	if !exists {
		return "", domain.ErrInvalidOrExpiredToken
	}
	delete(m.tokens, token)
	return username, nil
}

// MockSessionRepository is a mock implementation of repository.SessionRepository.
type MockSessionRepository struct {
	sessions map[string]string
	putErr   error
}

func NewMockSessionRepository() *MockSessionRepository {
	return &MockSessionRepository{sessions: make(map[string]string)}
}

func (m *MockSessionRepository) Put(ctx context.Context, token, username string) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.sessions[token] = username
	return nil
}

func (m *MockSessionRepository) Get(ctx context.Context, token string) (string, error) {
	username, exists := m.sessions[token]
	if !exists {
		return "", domain.ErrUnauthenticated
	}
	return username, nil
}

// MockNotifier is a mock implementation of notifier.Notifier.
type MockNotifier struct {
	sent    []sentMail
	sendErr error
}

type sentMail struct {
	email string
	token string
}

func (m *MockNotifier) Send(ctx context.Context, email, token string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentMail{email: email, token: token})
	return nil
}

// MockBlobStore is a mock implementation of storage.BlobStore.
type MockBlobStore struct {
	blobs     map[string][]byte
	putErr    error
	getErr    error
	existsErr error
	listErr   error
}

func NewMockBlobStore() *MockBlobStore {
	return &MockBlobStore{blobs: make(map[string][]byte)}
}

func (m *MockBlobStore) Put(ctx context.Context, filename string, content io.Reader) error {
	if m.putErr != nil {
		return m.putErr
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	m.blobs[filename] = data
	return nil
}

func (m *MockBlobStore) Get(ctx context.Context, filename string) (io.ReadCloser, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	data, exists := m.blobs[filename]
	if !exists {
		return nil, domain.ErrFileNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MockBlobStore) Exists(ctx context.Context, filename string) (bool, error) {
	if m.existsErr != nil {
		return false, m.existsErr
	}
	_, exists := m.blobs[filename]
	return exists, nil
}

func (m *MockBlobStore) List(ctx context.Context) ([]string, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	names := make([]string, 0, len(m.blobs))
	for name := range m.blobs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
