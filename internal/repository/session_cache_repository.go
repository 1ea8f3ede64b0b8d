package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"vocab-quiz/internal/cache"
	"vocab-quiz/internal/domain"
)

// SessionCacheRepository keeps quiz sessions as JSON documents in a
// domain.Cache. Every save refreshes the TTL.
type SessionCacheRepository struct {
	cache domain.Cache
	ttl   time.Duration
}

// NewSessionCacheRepository creates a session store on top of c.
func NewSessionCacheRepository(c domain.Cache, ttl time.Duration) *SessionCacheRepository {
	return &SessionCacheRepository{cache: c, ttl: ttl}
}

var _ domain.SessionRepository = (*SessionCacheRepository)(nil)

func sessionKey(id string) string {
	return cache.GenerateCacheKey("session", "quiz", id)
}

// Save implements domain.SessionRepository
func (r *SessionCacheRepository) Save(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return domain.NewInvalidInputError("session must have an id")
	}
	data, err := json.Marshal(session)
	if err != nil {
		return domain.NewInternalError("failed to encode session", err)
	}
	if err := r.cache.Set(ctx, sessionKey(session.ID), string(data), r.ttl); err != nil {
		return domain.NewInternalError("failed to store session", err)
	}
	return nil
}

// Get implements domain.SessionRepository
func (r *SessionCacheRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	data, err := r.cache.Get(ctx, sessionKey(id))
	if err != nil {
		if errors.Is(err, domain.ErrCacheMiss) {
			return nil, domain.NewSessionNotFoundError(id)
		}
		return nil, domain.NewInternalError("failed to read session", err)
	}

	var session domain.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("corrupt session %s", id), err)
	}
	if session.Answers == nil {
		session.Answers = map[int]int{}
	}
	return &session, nil
}

// Delete implements domain.SessionRepository
func (r *SessionCacheRepository) Delete(ctx context.Context, id string) error {
	if err := r.cache.Delete(ctx, sessionKey(id)); err != nil {
		return domain.NewInternalError("failed to delete session", err)
	}
	return nil
}
