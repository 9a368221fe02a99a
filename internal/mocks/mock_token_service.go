package mocks

import (
	"strings"
	"time"

	"github.com/fandressouza/indicacoes/domain"
)

// MockTokenService implements domain.TokenService interface for testing
type MockTokenService struct {
	IssueFunc func(sessionID string, expiresAt time.Time) (string, error)
	ParseFunc func(token string) (string, error)
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Issue signs a token for a session
func (m *MockTokenService) Issue(sessionID string, expiresAt time.Time) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(sessionID, expiresAt)
	}
	// Default behavior: readable token
	return "token_" + sessionID, nil
}

// Parse returns the session id of a token
func (m *MockTokenService) Parse(token string) (string, error) {
	if m.ParseFunc != nil {
		return m.ParseFunc(token)
	}
	// Default behavior: accept tokens produced by Issue
	if id, ok := strings.CutPrefix(token, "token_"); ok && id != "" {
		return id, nil
	}
	return "", domain.ErrTokenInvalid
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
