package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fandressouza/indicacoes/domain"
)

// SessionGateImpl implements domain.SessionGate. Sessions live in the session store; the
// client only holds a signed token naming the session.
type SessionGateImpl struct {
	sessionRepo domain.SessionRepository
	tokenSvc    domain.TokenService
	ttl         time.Duration
	now         func() time.Time
}

// NewSessionGate creates a new session gate
func NewSessionGate(sessionRepo domain.SessionRepository, tokenSvc domain.TokenService, ttl time.Duration) *SessionGateImpl {
	return &SessionGateImpl{
		sessionRepo: sessionRepo,
		tokenSvc:    tokenSvc,
		ttl:         ttl,
		now:         time.Now,
	}
}

// Create implements domain.SessionGate. Banned users never get a session.
func (g *SessionGateImpl) Create(ctx context.Context, user *domain.User) (*domain.Session, string, error) {
	if user.IsBanned {
		return nil, "", domain.ErrAccountBanned
	}

	now := g.now()
	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		IsAdmin:   user.IsAdmin,
		IsBanned:  user.IsBanned,
		CreatedAt: now,
		ExpiresAt: now.Add(g.ttl),
	}

	if err := g.sessionRepo.Create(ctx, session); err != nil {
		return nil, "", fmt.Errorf("failed to create session: %w", err)
	}

	token, err := g.tokenSvc.Issue(session.ID, session.ExpiresAt)
	if err != nil {
		_ = g.sessionRepo.Delete(ctx, session.ID)
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}
	return session, token, nil
}

// Resolve implements domain.SessionGate
func (g *SessionGateImpl) Resolve(ctx context.Context, token string) (*domain.Session, error) {
	if token == "" {
		return nil, domain.ErrNotLoggedIn
	}
	sessionID, err := g.tokenSvc.Parse(token)
	if err != nil {
		return nil, domain.ErrNotLoggedIn
	}

	session, err := g.sessionRepo.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotLoggedIn) {
			return nil, domain.ErrNotLoggedIn
		}
		return nil, err
	}
	if session.IsBanned || !g.now().Before(session.ExpiresAt) {
		return nil, domain.ErrNotLoggedIn
	}
	return session, nil
}

// RequireAuthenticated implements domain.SessionGate
func (g *SessionGateImpl) RequireAuthenticated(ctx context.Context, token string) (*domain.Session, error) {
	return g.Resolve(ctx, token)
}

// RequireAdmin implements domain.SessionGate
func (g *SessionGateImpl) RequireAdmin(ctx context.Context, token string) (*domain.Session, error) {
	session, err := g.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := requireAdmin(session); err != nil {
		return nil, err
	}
	return session, nil
}

// Destroy implements domain.SessionGate. Unknown or malformed tokens are a no-op.
func (g *SessionGateImpl) Destroy(ctx context.Context, token string) error {
	sessionID, err := g.tokenSvc.Parse(token)
	if err != nil {
		return nil
	}
	return g.sessionRepo.Delete(ctx, sessionID)
}

// RevokeUser implements domain.SessionGate
func (g *SessionGateImpl) RevokeUser(ctx context.Context, userID string) error {
	return g.sessionRepo.DeleteByUser(ctx, userID)
}

var _ domain.SessionGate = (*SessionGateImpl)(nil)
