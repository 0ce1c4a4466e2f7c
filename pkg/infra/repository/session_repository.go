package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/RHD-founder/thukpa/pkg/common"
	"github.com/RHD-founder/thukpa/pkg/domain"
	"github.com/RHD-founder/thukpa/pkg/domain/session"
	"github.com/go-redis/redis/v8"
)

const sessionKeyPattern = "session:%s"

type sessionRepository struct {
	cache common.Cache
}

func NewSessionRepository(cache common.Cache) session.Repository {
	return &sessionRepository{
		cache: cache,
	}
}

func (r *sessionRepository) Save(ctx context.Context, s *session.Session) error {
	sessionJSON, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		ttl = common.SessionCacheTTL
	}

	return r.cache.Set(ctx, fmt.Sprintf(sessionKeyPattern, s.Token), string(sessionJSON), ttl)
}

func (r *sessionRepository) Get(ctx context.Context, token string) (*session.Session, error) {
	sessionJSON, err := r.cache.Get(ctx, fmt.Sprintf(sessionKeyPattern, token))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.NewNotFoundError("session", token)
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var s session.Session
	if err := json.Unmarshal([]byte(sessionJSON), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &s, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	return r.cache.Delete(ctx, fmt.Sprintf(sessionKeyPattern, token))
}
