package services

import (
	"context"
	"iter"
	"sync"
	"testing"
	"time"

	"github.com/fandressouza/indicacoes/domain"
	"github.com/fandressouza/indicacoes/internal/mocks"
)

var ctx = context.Background()

func adminSession() *domain.Session {
	return &domain.Session{ID: "s-admin", UserID: "admin-1", Name: "Admin", IsAdmin: true, ExpiresAt: time.Now().Add(time.Hour)}
}

func userSession() *domain.Session {
	return &domain.Session{ID: "s-user", UserID: "user-1", Name: "Ana", ExpiresAt: time.Now().Add(time.Hour)}
}

// createValidUser creates a valid user entity for testing
func createValidUser(t *testing.T) *domain.User {
	t.Helper()

	return &domain.User{
		ID:           "user-1",
		Email:        "ana@example.com",
		Name:         "Ana",
		PasswordHash: "hashed_Secret123",
		CreatedAt:    time.Now().Add(-24 * time.Hour),
		UpdatedAt:    time.Now().Add(-1 * time.Hour),
	}
}

// memorySessions backs a MockSessionRepository with a map
func memorySessions() (*mocks.MockSessionRepository, map[string]*domain.Session) {
	var mu sync.Mutex
	store := map[string]*domain.Session{}
	repo := mocks.NewMockSessionRepository()
	repo.CreateFunc = func(ctx context.Context, s *domain.Session) error {
		mu.Lock()
		defer mu.Unlock()
		store[s.ID] = s
		return nil
	}
	repo.FindByIDFunc = func(ctx context.Context, id string) (*domain.Session, error) {
		mu.Lock()
		defer mu.Unlock()
		if s, ok := store[id]; ok {
			return s, nil
		}
		return nil, domain.ErrNotLoggedIn
	}
	repo.DeleteFunc = func(ctx context.Context, id string) error {
		mu.Lock()
		defer mu.Unlock()
		delete(store, id)
		return nil
	}
	repo.DeleteByUserFunc = func(ctx context.Context, userID string) error {
		mu.Lock()
		defer mu.Unlock()
		for id, s := range store {
			if s.UserID == userID {
				delete(store, id)
			}
		}
		return nil
	}
	return repo, store
}

func drain(t *testing.T, seq iter.Seq2[*domain.Listing, error]) []*domain.Listing {
	t.Helper()
	var out []*domain.Listing
	for l, err := range seq {
		if err != nil {
			t.Fatalf("unexpected iteration error: %v", err)
		}
		out = append(out, l)
	}
	return out
}
