package redis

import (
	"context"
	"errors"
	"time"

	"github.com/prostore/storefront/internal/auth/domain"
	pkgcache "github.com/prostore/storefront/pkg/cache"
)

const keyPrefix = "session:"

type sessionRepository struct {
	redis *pkgcache.RedisCache
}

// NewSessionRepository 创建 Redis 会话仓储实例
func NewSessionRepository(redis *pkgcache.RedisCache) domain.SessionRepository {
	return &sessionRepository{redis: redis}
}

func (r *sessionRepository) Save(ctx context.Context, session *domain.Session, ttlSeconds int) error {
	return r.redis.SetJSON(ctx, keyPrefix+session.TokenID, session, time.Duration(ttlSeconds)*time.Second)
}

func (r *sessionRepository) Get(ctx context.Context, tokenID string) (*domain.Session, error) {
	var session domain.Session
	err := r.redis.GetJSON(ctx, keyPrefix+tokenID, &session)
	if errors.Is(err, pkgcache.ErrCacheMiss) {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) Delete(ctx context.Context, tokenID string) error {
	return r.redis.Delete(ctx, keyPrefix+tokenID)
}
