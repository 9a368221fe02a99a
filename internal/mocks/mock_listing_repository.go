package mocks

import (
	"context"
	"iter"

	"github.com/fandressouza/indicacoes/domain"
)

// MockListingRepository implements domain.ListingRepository interface for testing
type MockListingRepository struct {
	InsertFunc         func(ctx context.Context, listing *domain.Listing) (string, error)
	FindByIDFunc       func(ctx context.Context, id string) (*domain.Listing, error)
	FindByCategoryFunc func(ctx context.Context, filter domain.ListingFilter) iter.Seq2[*domain.Listing, error]
	FindPendingFunc    func(ctx context.Context) iter.Seq2[*domain.Listing, error]
	SetApprovedFunc    func(ctx context.Context, id string) error
	SetRejectedFunc    func(ctx context.Context, id, reason string) error
}

// NewMockListingRepository creates a new MockListingRepository with default behaviors
func NewMockListingRepository() *MockListingRepository {
	return &MockListingRepository{}
}

// Insert stores a listing
func (m *MockListingRepository) Insert(ctx context.Context, listing *domain.Listing) (string, error) {
	if m.InsertFunc != nil {
		return m.InsertFunc(ctx, listing)
	}
	// Default behavior: success with a fixed id
	listing.ID = "listing-1"
	return listing.ID, nil
}

// FindByID finds a listing by ID
func (m *MockListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrNotFound
}

// FindByCategory lists listings matching filter
func (m *MockListingRepository) FindByCategory(ctx context.Context, filter domain.ListingFilter) iter.Seq2[*domain.Listing, error] {
	if m.FindByCategoryFunc != nil {
		return m.FindByCategoryFunc(ctx, filter)
	}
	return Seq()
}

// FindPending lists pending listings
func (m *MockListingRepository) FindPending(ctx context.Context) iter.Seq2[*domain.Listing, error] {
	if m.FindPendingFunc != nil {
		return m.FindPendingFunc(ctx)
	}
	return Seq()
}

// SetApproved approves a listing
func (m *MockListingRepository) SetApproved(ctx context.Context, id string) error {
	if m.SetApprovedFunc != nil {
		return m.SetApprovedFunc(ctx, id)
	}
	return nil
}

// SetRejected rejects a listing
func (m *MockListingRepository) SetRejected(ctx context.Context, id, reason string) error {
	if m.SetRejectedFunc != nil {
		return m.SetRejectedFunc(ctx, id, reason)
	}
	return nil
}

// Seq returns a sequence over fixed listings
func Seq(listings ...*domain.Listing) iter.Seq2[*domain.Listing, error] {
	return func(yield func(*domain.Listing, error) bool) {
		for _, l := range listings {
			if !yield(l, nil) {
				return
			}
		}
	}
}

// ErrSeq returns a sequence that fails immediately with err
func ErrSeq(err error) iter.Seq2[*domain.Listing, error] {
	return func(yield func(*domain.Listing, error) bool) {
		yield(nil, err)
	}
}

// Compile-time interface compliance verification
var _ domain.ListingRepository = (*MockListingRepository)(nil)
