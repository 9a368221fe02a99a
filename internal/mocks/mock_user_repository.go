package mocks

import (
	"context"

	"github.com/fandressouza/indicacoes/domain"
)

// MockUserRepository implements domain.UserRepository interface for testing
type MockUserRepository struct {
	CreateFunc      func(ctx context.Context, user *domain.User) error
	FindByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
	FindByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
	SetBannedFunc   func(ctx context.Context, id string, banned bool) error
	SetAdminFunc    func(ctx context.Context, id string, admin bool) error
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

// Create creates a new user
func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	// Default behavior: success with a fixed id
	user.ID = "user-1"
	return nil
}

// FindByEmail finds a user by email
func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrNoSuchUser
}

// FindByID finds a user by ID
func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrNoSuchUser
}

// SetBanned sets the ban flag
func (m *MockUserRepository) SetBanned(ctx context.Context, id string, banned bool) error {
	if m.SetBannedFunc != nil {
		return m.SetBannedFunc(ctx, id, banned)
	}
	return nil
}

// SetAdmin sets the admin flag
func (m *MockUserRepository) SetAdmin(ctx context.Context, id string, admin bool) error {
	if m.SetAdminFunc != nil {
		return m.SetAdminFunc(ctx, id, admin)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
