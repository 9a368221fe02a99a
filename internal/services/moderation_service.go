package services

import (
	"context"
	"fmt"
	"iter"

	"github.com/fandressouza/indicacoes/domain"
)

// ModerationServiceImpl implements domain.ModerationService.
// A listing moves from pending to approved or to rejected, and both are final.
type ModerationServiceImpl struct {
	listings domain.ListingRepository
	notifier domain.NotificationService
	audit    domain.AuditLogger
	metrics  domain.MetricsRecorder
}

// NewModerationService creates a new moderation service
func NewModerationService(
	listings domain.ListingRepository,
	notifier domain.NotificationService,
	audit domain.AuditLogger,
	metrics domain.MetricsRecorder,
) *ModerationServiceImpl {
	return &ModerationServiceImpl{
		listings: listings,
		notifier: notifier,
		audit:    audit,
		metrics:  metrics,
	}
}

// Approve implements domain.ModerationService. The owner is told by SMS on a best
// effort basis.
func (s *ModerationServiceImpl) Approve(ctx context.Context, acting *domain.Session, listingID string) error {
	if err := requireAdmin(acting); err != nil {
		return err
	}

	err := s.listings.SetApproved(ctx, listingID)
	s.metrics.ObserveModeration("approve", result(err))
	event := domain.NewAuditEvent(domain.ListingApprovedEvent, acting.UserID).WithListing(listingID)
	if err != nil {
		s.audit.LogEvent(ctx, event.WithError(err))
		return err
	}

	if smsErr := s.notifyOwner(ctx, listingID); smsErr != nil {
		event.WithMetadata("sms_error", smsErr.Error())
	}
	s.audit.LogEvent(ctx, event)
	return nil
}

// Reject implements domain.ModerationService
func (s *ModerationServiceImpl) Reject(ctx context.Context, acting *domain.Session, listingID, reason string) error {
	if err := requireAdmin(acting); err != nil {
		return err
	}

	err := s.listings.SetRejected(ctx, listingID, reason)
	s.metrics.ObserveModeration("reject", result(err))
	event := domain.NewAuditEvent(domain.ListingRejectedEvent, acting.UserID).
		WithListing(listingID).
		WithMetadata("reason", reason)
	if err != nil {
		s.audit.LogEvent(ctx, event.WithError(err))
		return err
	}
	s.audit.LogEvent(ctx, event)
	return nil
}

// ListPending implements domain.ModerationService
func (s *ModerationServiceImpl) ListPending(ctx context.Context, acting *domain.Session) (iter.Seq2[*domain.Listing, error], error) {
	if err := requireAdmin(acting); err != nil {
		return nil, err
	}
	return s.listings.FindPending(ctx), nil
}

func (s *ModerationServiceImpl) notifyOwner(ctx context.Context, listingID string) error {
	listing, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		return err
	}
	if listing.Phone == "" {
		return nil
	}
	msg := fmt.Sprintf("Seu anúncio \"%s\" foi aprovado e já está visível no Indicações.", listing.Offer)
	return s.notifier.SendSMS(ctx, listing.Phone, msg)
}

var _ domain.ModerationService = (*ModerationServiceImpl)(nil)
