package services

import (
	"context"
	"fmt"
	"time"

	"github.com/fandressouza/indicacoes/domain"
)

// SubmissionServiceImpl implements domain.SubmissionService
type SubmissionServiceImpl struct {
	listings  domain.ListingRepository
	processor domain.ImageProcessor
	images    domain.ImageStore
	audit     domain.AuditLogger
	metrics   domain.MetricsRecorder
	now       func() time.Time
}

// NewSubmissionService creates a new submission service
func NewSubmissionService(
	listings domain.ListingRepository,
	processor domain.ImageProcessor,
	images domain.ImageStore,
	audit domain.AuditLogger,
	metrics domain.MetricsRecorder,
) *SubmissionServiceImpl {
	return &SubmissionServiceImpl{
		listings:  listings,
		processor: processor,
		images:    images,
		audit:     audit,
		metrics:   metrics,
		now:       time.Now,
	}
}

// Submit implements domain.SubmissionService. New listings start pending and unsponsored.
func (s *SubmissionServiceImpl) Submit(ctx context.Context, owner *domain.Session, form domain.SubmissionForm, image *domain.UploadedImage) (string, error) {
	id, err := s.submit(ctx, owner, form, image)
	s.metrics.ObserveSubmission(result(err))

	userID := ""
	if owner != nil {
		userID = owner.UserID
	}
	event := domain.NewAuditEvent(domain.ListingSubmittedEvent, userID).WithListing(id)
	if err != nil {
		event.WithError(err)
	}
	s.audit.LogEvent(ctx, event)
	return id, err
}

func (s *SubmissionServiceImpl) submit(ctx context.Context, owner *domain.Session, form domain.SubmissionForm, image *domain.UploadedImage) (string, error) {
	if owner == nil {
		return "", domain.ErrNotLoggedIn
	}
	if image == nil || len(image.Data) == 0 || !domain.HasImageExtension(image.Filename) {
		return "", domain.ErrInvalidImage
	}

	valid, err := ValidateSubmission(form)
	if err != nil {
		return "", err
	}

	name, data, err := s.processor.Process(image.Filename, image.Data)
	if err != nil {
		return "", err
	}
	ref, err := s.images.Save(ctx, name, data)
	if err != nil {
		return "", err
	}

	listing := &domain.Listing{
		OwnerID:     owner.UserID,
		OwnerName:   owner.Name,
		Offer:       valid.Offer,
		Phone:       valid.Phone,
		HouseNumber: valid.HouseNumber,
		Category:    valid.Category,
		Description: valid.Description,
		Price:       valid.Price,
		Delivery:    valid.Delivery,
		ImageRef:    ref,
		Date:        s.now().Format(time.DateOnly),
	}

	id, err := s.listings.Insert(ctx, listing)
	if err != nil {
		if delErr := s.images.Delete(ctx, ref); delErr != nil {
			return "", fmt.Errorf("%w (image %s left behind: %v)", err, ref, delErr)
		}
		return "", err
	}
	return id, nil
}

var _ domain.SubmissionService = (*SubmissionServiceImpl)(nil)
