package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tmnguyen/portfolio-api/internal/application/service"
	"github.com/tmnguyen/portfolio-api/pkg/apperror"
	"github.com/tmnguyen/portfolio-api/pkg/logger"
)

const sessionKeyPrefix = "session:"

type redisSessionStore struct {
	rdb    *redis.Client
	logger logger.Logger
}

func NewRedisSessionStore(rdb *redis.Client, log logger.Logger) service.SessionStore {
	return &redisSessionStore{rdb: rdb, logger: log}
}

func (s *redisSessionStore) Put(ctx context.Context, sessionID string, ownerID uuid.UUID, ttl time.Duration) error {
	err := s.rdb.Set(ctx, sessionKeyPrefix+sessionID, ownerID.String(), ttl).Err()
	if err != nil {
		return apperror.NewInternal("failed to record session", err)
	}
	return nil
}

func (s *redisSessionStore) IsActive(ctx context.Context, sessionID string) (bool, error) {
	_, err := s.rdb.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, apperror.NewInternal("failed to check session", err)
	}
	return true, nil
}

func (s *redisSessionStore) Revoke(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return apperror.NewInternal("failed to revoke session", err)
	}
	return nil
}
