package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fandressouza/indicacoes/domain"
)

// SessionRepositoryImpl implements domain.SessionRepository using Redis. Each session is a
// single JSON document under session:<id>; user_sessions:<user id> indexes the ids of a
// user's sessions so they can all be revoked on ban.
type SessionRepositoryImpl struct {
	client     *redis.Client
	prefix     string
	userPrefix string
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(client *redis.Client) domain.SessionRepository {
	return &SessionRepositoryImpl{
		client:     client,
		prefix:     "session:",
		userPrefix: "user_sessions:",
	}
}

// Create implements domain.SessionRepository. The key expires with the session.
func (r *SessionRepositoryImpl) Create(ctx context.Context, session *domain.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", session.ID)
	}
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	userKey := r.userPrefix + session.UserID
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.prefix+session.ID, data, ttl)
	pipe.SAdd(ctx, userKey, session.ID)
	// sessions share one TTL, so the newest session outlives the rest
	pipe.Expire(ctx, userKey, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return domain.StorageError("create session", err)
	}
	return nil
}

// FindByID implements domain.SessionRepository
func (r *SessionRepositoryImpl) FindByID(ctx context.Context, sessionID string) (*domain.Session, error) {
	key := r.prefix + sessionID
	data, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotLoggedIn
		}
		return nil, domain.StorageError("find session", err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	if session.ExpiresAt.Before(time.Now()) {
		r.client.Del(ctx, key)
		return nil, domain.ErrNotLoggedIn
	}

	return &session, nil
}

// Delete implements domain.SessionRepository. Deleting a missing session is not an error.
func (r *SessionRepositoryImpl) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.prefix+sessionID).Err(); err != nil {
		return domain.StorageError("delete session", err)
	}
	return nil
}

// DeleteByUser implements domain.SessionRepository
func (r *SessionRepositoryImpl) DeleteByUser(ctx context.Context, userID string) error {
	userKey := r.userPrefix + userID
	ids, err := r.client.SMembers(ctx, userKey).Result()
	if err != nil {
		return domain.StorageError("list user sessions", err)
	}

	keys := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		keys = append(keys, r.prefix+id)
	}
	keys = append(keys, userKey)

	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return domain.StorageError("delete user sessions", err)
	}
	return nil
}
