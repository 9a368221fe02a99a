package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fandressouza/indicacoes/domain"
)

// Password limits. bcrypt ignores everything past 72 bytes.
const (
	MinPasswordLength = 5
	MaxPasswordLength = 72
)

var commonPasswords = map[string]struct{}{
	"password":     {},
	"Password1234": {},
}

// CheckPassword returns ErrWeakPassword for passwords outside the length limits or on the
// common password list
func CheckPassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: at least %d characters", domain.ErrWeakPassword, MinPasswordLength)
	}
	if len(password) > MaxPasswordLength {
		return fmt.Errorf("%w: at most %d bytes", domain.ErrWeakPassword, MaxPasswordLength)
	}
	if _, common := commonPasswords[password]; common {
		return fmt.Errorf("%w: too common", domain.ErrWeakPassword)
	}
	return nil
}

// CredentialServiceImpl implements domain.CredentialService
type CredentialServiceImpl struct {
	userRepo    domain.UserRepository
	passwordSvc domain.PasswordService
	gate        domain.SessionGate
	audit       domain.AuditLogger
	metrics     domain.MetricsRecorder
}

// NewCredentialService creates a new credential service
func NewCredentialService(
	userRepo domain.UserRepository,
	passwordSvc domain.PasswordService,
	gate domain.SessionGate,
	audit domain.AuditLogger,
	metrics domain.MetricsRecorder,
) *CredentialServiceImpl {
	return &CredentialServiceImpl{
		userRepo:    userRepo,
		passwordSvc: passwordSvc,
		gate:        gate,
		audit:       audit,
		metrics:     metrics,
	}
}

// Register implements domain.CredentialService. It does not log the user in.
func (s *CredentialServiceImpl) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	email = NormalizeEmail(email)
	name = strings.TrimSpace(name)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: email is required", domain.ErrInvalidForm)
	}
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrInvalidForm)
	}
	if err := CheckPassword(password); err != nil {
		return nil, err
	}

	// Check if user already exists
	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, domain.ErrDuplicateEmail
	}
	if !errors.Is(err, domain.ErrNoSuchUser) {
		return nil, err
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: hashedPassword,
	}
	// the unique index still catches a concurrent registration of the same email
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserRegistrationEvent, user.ID).WithEmail(email))
	return user, nil
}

// Authenticate implements domain.CredentialService
func (s *CredentialServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	email = NormalizeEmail(email)
	res, err := s.authenticate(ctx, email, password)
	s.metrics.ObserveLogin(result(err))
	if err != nil {
		s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginFailureEvent, "").WithEmail(email).WithError(err))
		return nil, err
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLoginEvent, res.User.ID).
		WithEmail(email).
		WithMetadata("session_id", res.Session.ID))
	return res, nil
}

func (s *CredentialServiceImpl) authenticate(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredential
	}
	if user.IsBanned {
		return nil, domain.ErrAccountBanned
	}

	session, token, err := s.gate.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	// Re-read once the session is indexed: a ban landing before Create never reaches it
	// through RevokeUser.
	current, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && current.IsBanned {
		err = domain.ErrAccountBanned
	}
	if err != nil {
		if derr := s.gate.Destroy(ctx, token); derr != nil {
			return nil, errors.Join(err, derr)
		}
		return nil, err
	}
	return &domain.AuthResult{User: user, Session: session, Token: token}, nil
}

// Logout implements domain.CredentialService. Logging out twice is not an error.
func (s *CredentialServiceImpl) Logout(ctx context.Context, token string) error {
	session, err := s.gate.Resolve(ctx, token)
	if err != nil {
		return s.gate.Destroy(ctx, token)
	}
	if err := s.gate.Destroy(ctx, token); err != nil {
		return err
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(domain.UserLogoutEvent, session.UserID))
	return nil
}

// GetUser implements domain.CredentialService
func (s *CredentialServiceImpl) GetUser(ctx context.Context, acting *domain.Session, id string) (*domain.User, error) {
	if err := requireAdmin(acting); err != nil {
		return nil, err
	}
	return s.userRepo.FindByID(ctx, id)
}

// SetBanned implements domain.CredentialService. Banning revokes every live session of
// the user. Admins cannot ban themselves.
func (s *CredentialServiceImpl) SetBanned(ctx context.Context, acting *domain.Session, id string, banned bool) error {
	if err := requireAdmin(acting); err != nil {
		return err
	}
	if banned && acting.UserID == id {
		return fmt.Errorf("%w: cannot ban yourself", domain.ErrForbidden)
	}

	if err := s.userRepo.SetBanned(ctx, id, banned); err != nil {
		return err
	}

	eventType := domain.UserUnbannedEvent
	if banned {
		eventType = domain.UserBannedEvent
		if err := s.gate.RevokeUser(ctx, id); err != nil {
			return fmt.Errorf("user banned but sessions not revoked: %w", err)
		}
	}
	s.audit.LogEvent(ctx, domain.NewAuditEvent(eventType, id).WithMetadata("by", acting.UserID))
	return nil
}

var _ domain.CredentialService = (*CredentialServiceImpl)(nil)
