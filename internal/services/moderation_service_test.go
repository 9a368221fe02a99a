package services

import (
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fandressouza/indicacoes/domain"
	"github.com/fandressouza/indicacoes/internal/mocks"
)

type moderationFixture struct {
	listings *mocks.MockListingRepository
	notifier *mocks.MockNotificationService
	audit    *mocks.MockAuditLogger
	metrics  *mocks.MockMetricsRecorder
	svc      *ModerationServiceImpl
}

func newModerationFixture() *moderationFixture {
	f := &moderationFixture{
		listings: mocks.NewMockListingRepository(),
		notifier: mocks.NewMockNotificationService(),
		audit:    mocks.NewMockAuditLogger(),
		metrics:  mocks.NewMockMetricsRecorder(),
	}
	f.listings.FindByIDFunc = func(ctx context.Context, id string) (*domain.Listing, error) {
		return &domain.Listing{ID: id, Offer: "Bolo", Phone: "11999990000", IsApproved: true}, nil
	}
	f.svc = NewModerationService(f.listings, f.notifier, f.audit, f.metrics)
	return f
}

func TestModerationServiceImpl_Approve(t *testing.T) {
	tests := []struct {
		name          string
		acting        *domain.Session
		storeErr      error
		expectedError error
		expectSMS     bool
		metricKey     string
	}{
		{name: "admin approves pending listing", acting: adminSession(), expectSMS: true, metricKey: "approve/success"},
		{name: "anonymous", acting: nil, expectedError: domain.ErrNotLoggedIn},
		{name: "non admin", acting: userSession(), expectedError: domain.ErrForbidden},
		{name: "missing listing", acting: adminSession(), storeErr: domain.ErrNotFound, expectedError: domain.ErrNotFound, metricKey: "approve/NOT_FOUND"},
		{name: "second approval", acting: adminSession(), storeErr: domain.ErrAlreadyApproved, expectedError: domain.ErrAlreadyApproved, metricKey: "approve/ALREADY_APPROVED"},
		{name: "approve rejected", acting: adminSession(), storeErr: domain.ErrAlreadyRejected, expectedError: domain.ErrAlreadyRejected, metricKey: "approve/ALREADY_REJECTED"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newModerationFixture()
			called := false
			f.listings.SetApprovedFunc = func(ctx context.Context, id string) error {
				called = true
				assert.Equal(t, "ad-1", id)
				return tt.storeErr
			}

			err := f.svc.Approve(ctx, tt.acting, "ad-1")
			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				require.NoError(t, err)
			}

			if tt.acting == nil || !tt.acting.IsAdmin {
				assert.False(t, called, "store must not be touched without admin rights")
				assert.Empty(t, f.audit.Events)
				return
			}
			assert.Equal(t, 1, f.metrics.Moderation[tt.metricKey])
			require.Len(t, f.audit.Events, 1)
			assert.Equal(t, tt.expectedError == nil, f.audit.Events[0].Success)
			if tt.expectSMS {
				require.Len(t, f.notifier.Sent, 1)
				assert.Equal(t, "11999990000", f.notifier.Sent[0].To)
				assert.Contains(t, f.notifier.Sent[0].Message, "Bolo")
			} else {
				assert.Empty(t, f.notifier.Sent)
			}
		})
	}
}

func TestModerationServiceImpl_ApproveSMSFailureIsNotFatal(t *testing.T) {
	f := newModerationFixture()
	f.notifier.SendSMSFunc = func(ctx context.Context, to, message string) error {
		return errors.New("twilio down")
	}

	require.NoError(t, f.svc.Approve(ctx, adminSession(), "ad-1"))
	require.Len(t, f.audit.Events, 1)
	assert.True(t, f.audit.Events[0].Success)
	assert.Equal(t, "twilio down", f.audit.Events[0].Metadata["sms_error"])
}

func TestModerationServiceImpl_Reject(t *testing.T) {
	f := newModerationFixture()
	var gotReason string
	f.listings.SetRejectedFunc = func(ctx context.Context, id, reason string) error {
		gotReason = reason
		if id == "approved" {
			return domain.ErrAlreadyApproved
		}
		return nil
	}

	require.NoError(t, f.svc.Reject(ctx, adminSession(), "ad-1", "imagem inadequada"))
	assert.Equal(t, "imagem inadequada", gotReason)
	assert.Empty(t, f.notifier.Sent)

	assert.ErrorIs(t, f.svc.Reject(ctx, adminSession(), "approved", "late"), domain.ErrAlreadyApproved)
	assert.ErrorIs(t, f.svc.Reject(ctx, userSession(), "ad-1", "x"), domain.ErrForbidden)

	assert.Equal(t, 1, f.metrics.Moderation["reject/success"])
	assert.Equal(t, 1, f.metrics.Moderation["reject/ALREADY_APPROVED"])
	assert.Equal(t, []domain.AuditEventType{domain.ListingRejectedEvent, domain.ListingRejectedEvent}, f.audit.Types())
}

func TestModerationServiceImpl_ListPending(t *testing.T) {
	f := newModerationFixture()
	f.listings.FindPendingFunc = func(ctx context.Context) iter.Seq2[*domain.Listing, error] {
		return mocks.Seq(&domain.Listing{ID: "a"}, &domain.Listing{ID: "b"})
	}

	_, err := f.svc.ListPending(ctx, userSession())
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.svc.ListPending(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrNotLoggedIn)

	seq, err := f.svc.ListPending(ctx, adminSession())
	require.NoError(t, err)
	assert.Len(t, drain(t, seq), 2)
}
