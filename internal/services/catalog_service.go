package services

import (
	"context"
	"iter"

	"github.com/fandressouza/indicacoes/domain"
)

// CatalogServiceImpl implements domain.CatalogService. Pending and rejected listings are
// visible to admins only.
type CatalogServiceImpl struct {
	listings domain.ListingRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(listings domain.ListingRepository) *CatalogServiceImpl {
	return &CatalogServiceImpl{listings: listings}
}

// Browse implements domain.CatalogService. An empty category lists everything approved.
func (s *CatalogServiceImpl) Browse(ctx context.Context, category string) iter.Seq2[*domain.Listing, error] {
	return s.listings.FindByCategory(ctx, domain.ListingFilter{
		Category: category,
		Status:   domain.StatusApproved,
	})
}

// Detail implements domain.CatalogService
func (s *CatalogServiceImpl) Detail(ctx context.Context, viewer *domain.Session, id string) (*domain.Listing, error) {
	listing, err := s.listings.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !listing.IsApproved && (viewer == nil || !viewer.IsAdmin) {
		return nil, domain.ErrNotFound
	}
	return listing, nil
}

// Categories implements domain.CatalogService
func (s *CatalogServiceImpl) Categories() domain.Vocabulary {
	return domain.Categories()
}

var _ domain.CatalogService = (*CatalogServiceImpl)(nil)
