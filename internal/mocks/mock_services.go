package mocks

import (
	"context"
	"iter"

	"github.com/fandressouza/indicacoes/domain"
)

// MockCredentialService implements domain.CredentialService interface for testing
type MockCredentialService struct {
	RegisterFunc     func(ctx context.Context, email, name, password string) (*domain.User, error)
	AuthenticateFunc func(ctx context.Context, email, password string) (*domain.AuthResult, error)
	LogoutFunc       func(ctx context.Context, token string) error
	GetUserFunc      func(ctx context.Context, acting *domain.Session, id string) (*domain.User, error)
	SetBannedFunc    func(ctx context.Context, acting *domain.Session, id string, banned bool) error
}

// NewMockCredentialService creates a new MockCredentialService with default behaviors
func NewMockCredentialService() *MockCredentialService {
	return &MockCredentialService{}
}

// Register creates a user
func (m *MockCredentialService) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, email, name, password)
	}
	return &domain.User{ID: "user-1", Email: email, Name: name}, nil
}

// Authenticate logs a user in
func (m *MockCredentialService) Authenticate(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if m.AuthenticateFunc != nil {
		return m.AuthenticateFunc(ctx, email, password)
	}
	return nil, domain.ErrInvalidCredential
}

// Logout ends the session behind token
func (m *MockCredentialService) Logout(ctx context.Context, token string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, token)
	}
	return nil
}

// GetUser returns a user record for an admin
func (m *MockCredentialService) GetUser(ctx context.Context, acting *domain.Session, id string) (*domain.User, error) {
	if m.GetUserFunc != nil {
		return m.GetUserFunc(ctx, acting, id)
	}
	return nil, domain.ErrNoSuchUser
}

// SetBanned changes the ban flag of a user
func (m *MockCredentialService) SetBanned(ctx context.Context, acting *domain.Session, id string, banned bool) error {
	if m.SetBannedFunc != nil {
		return m.SetBannedFunc(ctx, acting, id, banned)
	}
	return nil
}

// MockModerationService implements domain.ModerationService interface for testing
type MockModerationService struct {
	ApproveFunc     func(ctx context.Context, acting *domain.Session, id string) error
	RejectFunc      func(ctx context.Context, acting *domain.Session, id, reason string) error
	ListPendingFunc func(ctx context.Context, acting *domain.Session) (iter.Seq2[*domain.Listing, error], error)
}

// NewMockModerationService creates a new MockModerationService with default behaviors
func NewMockModerationService() *MockModerationService {
	return &MockModerationService{}
}

// Approve approves a listing
func (m *MockModerationService) Approve(ctx context.Context, acting *domain.Session, id string) error {
	if m.ApproveFunc != nil {
		return m.ApproveFunc(ctx, acting, id)
	}
	return nil
}

// Reject rejects a listing
func (m *MockModerationService) Reject(ctx context.Context, acting *domain.Session, id, reason string) error {
	if m.RejectFunc != nil {
		return m.RejectFunc(ctx, acting, id, reason)
	}
	return nil
}

// ListPending returns the pending queue
func (m *MockModerationService) ListPending(ctx context.Context, acting *domain.Session) (iter.Seq2[*domain.Listing, error], error) {
	if m.ListPendingFunc != nil {
		return m.ListPendingFunc(ctx, acting)
	}
	return Seq(), nil
}

// MockSubmissionService implements domain.SubmissionService interface for testing
type MockSubmissionService struct {
	SubmitFunc func(ctx context.Context, owner *domain.Session, form domain.SubmissionForm, image *domain.UploadedImage) (string, error)
}

// NewMockSubmissionService creates a new MockSubmissionService with default behaviors
func NewMockSubmissionService() *MockSubmissionService {
	return &MockSubmissionService{}
}

// Submit stores a new listing
func (m *MockSubmissionService) Submit(ctx context.Context, owner *domain.Session, form domain.SubmissionForm, image *domain.UploadedImage) (string, error) {
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, owner, form, image)
	}
	return "listing-1", nil
}

// MockCatalogService implements domain.CatalogService interface for testing
type MockCatalogService struct {
	BrowseFunc func(ctx context.Context, category string) iter.Seq2[*domain.Listing, error]
	DetailFunc func(ctx context.Context, viewer *domain.Session, id string) (*domain.Listing, error)
}

// NewMockCatalogService creates a new MockCatalogService with default behaviors
func NewMockCatalogService() *MockCatalogService {
	return &MockCatalogService{}
}

// Browse lists approved listings
func (m *MockCatalogService) Browse(ctx context.Context, category string) iter.Seq2[*domain.Listing, error] {
	if m.BrowseFunc != nil {
		return m.BrowseFunc(ctx, category)
	}
	return Seq()
}

// Detail returns one listing
func (m *MockCatalogService) Detail(ctx context.Context, viewer *domain.Session, id string) (*domain.Listing, error) {
	if m.DetailFunc != nil {
		return m.DetailFunc(ctx, viewer, id)
	}
	return nil, domain.ErrNotFound
}

// Categories returns the real vocabulary
func (m *MockCatalogService) Categories() domain.Vocabulary {
	return domain.Categories()
}

// Compile-time interface compliance verification
var (
	_ domain.CredentialService = (*MockCredentialService)(nil)
	_ domain.ModerationService = (*MockModerationService)(nil)
	_ domain.SubmissionService = (*MockSubmissionService)(nil)
	_ domain.CatalogService    = (*MockCatalogService)(nil)
)
