package mocks

import (
	"context"

	"github.com/fandressouza/indicacoes/domain"
)

// MockSessionGate implements domain.SessionGate interface for testing
type MockSessionGate struct {
	CreateFunc               func(ctx context.Context, user *domain.User) (*domain.Session, string, error)
	ResolveFunc              func(ctx context.Context, token string) (*domain.Session, error)
	RequireAuthenticatedFunc func(ctx context.Context, token string) (*domain.Session, error)
	RequireAdminFunc         func(ctx context.Context, token string) (*domain.Session, error)
	DestroyFunc              func(ctx context.Context, token string) error
	RevokeUserFunc           func(ctx context.Context, userID string) error
}

// NewMockSessionGate creates a new MockSessionGate with default behaviors
func NewMockSessionGate() *MockSessionGate {
	return &MockSessionGate{}
}

// Create opens a session for user
func (m *MockSessionGate) Create(ctx context.Context, user *domain.User) (*domain.Session, string, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	// Default behavior: session bound to the user
	session := &domain.Session{ID: "session-" + user.ID, UserID: user.ID, Email: user.Email, Name: user.Name, IsAdmin: user.IsAdmin}
	return session, "token_" + session.ID, nil
}

// Resolve maps a token to its session
func (m *MockSessionGate) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, token)
	}
	return nil, domain.ErrNotLoggedIn
}

// RequireAuthenticated resolves a token or fails with ErrNotLoggedIn
func (m *MockSessionGate) RequireAuthenticated(ctx context.Context, token string) (*domain.Session, error) {
	if m.RequireAuthenticatedFunc != nil {
		return m.RequireAuthenticatedFunc(ctx, token)
	}
	return m.Resolve(ctx, token)
}

// RequireAdmin resolves an admin token
func (m *MockSessionGate) RequireAdmin(ctx context.Context, token string) (*domain.Session, error) {
	if m.RequireAdminFunc != nil {
		return m.RequireAdminFunc(ctx, token)
	}
	session, err := m.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	if !session.IsAdmin {
		return nil, domain.ErrForbidden
	}
	return session, nil
}

// Destroy ends the session behind token
func (m *MockSessionGate) Destroy(ctx context.Context, token string) error {
	if m.DestroyFunc != nil {
		return m.DestroyFunc(ctx, token)
	}
	return nil
}

// RevokeUser ends every session of a user
func (m *MockSessionGate) RevokeUser(ctx context.Context, userID string) error {
	if m.RevokeUserFunc != nil {
		return m.RevokeUserFunc(ctx, userID)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.SessionGate = (*MockSessionGate)(nil)
