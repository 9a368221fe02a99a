package domain

import (
	"context"
	"iter"
	"time"
)

// UserRepository defines user data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	SetBanned(ctx context.Context, id string, banned bool) error
	SetAdmin(ctx context.Context, id string, admin bool) error
}

// ListingRepository defines listing data access operations.
// Sequences are lazy and restartable: every range over them runs a fresh query.
type ListingRepository interface {
	Insert(ctx context.Context, listing *Listing) (string, error)
	FindByID(ctx context.Context, id string) (*Listing, error)
	FindByCategory(ctx context.Context, filter ListingFilter) iter.Seq2[*Listing, error]
	FindPending(ctx context.Context) iter.Seq2[*Listing, error]
	SetApproved(ctx context.Context, id string) error
	SetRejected(ctx context.Context, id, reason string) error
}

// SessionRepository defines session data access operations
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindByID(ctx context.Context, sessionID string) (*Session, error)
	Delete(ctx context.Context, sessionID string) error
	DeleteByUser(ctx context.Context, userID string) error
}

// CredentialService defines registration and authentication
type CredentialService interface {
	Register(ctx context.Context, email, name, password string) (*User, error)
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
	Logout(ctx context.Context, token string) error
	GetUser(ctx context.Context, acting *Session, id string) (*User, error)
	SetBanned(ctx context.Context, acting *Session, id string, banned bool) error
}

// SessionGate maps opaque tokens to sessions and gates operations by role
type SessionGate interface {
	Create(ctx context.Context, user *User) (*Session, string, error)
	Resolve(ctx context.Context, token string) (*Session, error)
	RequireAuthenticated(ctx context.Context, token string) (*Session, error)
	RequireAdmin(ctx context.Context, token string) (*Session, error)
	Destroy(ctx context.Context, token string) error
	RevokeUser(ctx context.Context, userID string) error
}

// ModerationService enforces the listing approval state machine
type ModerationService interface {
	Approve(ctx context.Context, acting *Session, listingID string) error
	Reject(ctx context.Context, acting *Session, listingID, reason string) error
	ListPending(ctx context.Context, acting *Session) (iter.Seq2[*Listing, error], error)
}

// SubmissionService assembles and stores new listings
type SubmissionService interface {
	Submit(ctx context.Context, owner *Session, form SubmissionForm, image *UploadedImage) (string, error)
}

// CatalogService serves the public, approved-only listing views
type CatalogService interface {
	Browse(ctx context.Context, category string) iter.Seq2[*Listing, error]
	Detail(ctx context.Context, viewer *Session, id string) (*Listing, error)
	Categories() Vocabulary
}

// PasswordService defines password operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService signs and verifies the session token carried by clients
type TokenService interface {
	Issue(sessionID string, expiresAt time.Time) (string, error)
	Parse(token string) (string, error)
}

// ImageProcessor decodes an upload, normalizes it for display and names it for storage.
// Undecodable data yields ErrInvalidImage.
type ImageProcessor interface {
	Process(filename string, data []byte) (name string, out []byte, err error)
}

// ImageStore persists processed listing images
type ImageStore interface {
	Save(ctx context.Context, name string, data []byte) (string, error)
	Delete(ctx context.Context, ref string) error
}

// NotificationService defines notification operations
type NotificationService interface {
	SendSMS(ctx context.Context, to, message string) error
}

// MetricsRecorder counts business outcomes. Results are "success" or an error code.
type MetricsRecorder interface {
	ObserveLogin(result string)
	ObserveSubmission(result string)
	ObserveModeration(action, result string)
}

// CasbinEnforcer interface defines the methods we need from Casbin enforcer
type CasbinEnforcer interface {
	AddPolicy(params ...interface{}) (bool, error)
	AddGroupingPolicy(params ...interface{}) (bool, error)
	Enforce(rvals ...interface{}) (bool, error)
}
