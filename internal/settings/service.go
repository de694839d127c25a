package settings

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const cacheKey = "veritas:settings"

// Service serves the settings singleton through a Redis read-through cache.
// The cache is advisory: a Redis outage degrades to direct database reads.
type Service struct {
	repo     RepositoryPort
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *slog.Logger
	group    singleflight.Group
}

// NewService builds a Service instance. The cache client may be nil, in which
// case every read hits the repository.
func NewService(repo RepositoryPort, cache *redis.Client, cacheTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// Get returns the current settings, preferring the cache. Concurrent misses
// collapse into a single repository read.
func (s *Service) Get(ctx context.Context) (*Settings, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, cacheKey).Result()
		if err == nil {
			var cached Settings
			if err := json.Unmarshal([]byte(raw), &cached); err == nil {
				return &cached, nil
			}
			// Unreadable payload, fall through and repopulate.
		} else if !errors.Is(err, redis.Nil) && s.logger != nil {
			s.logger.Warn("settings cache read failed", slog.Any("error", err))
		}
	}

	v, err, _ := s.group.Do(cacheKey, func() (any, error) {
		current, err := s.repo.Get(ctx)
		if err != nil {
			return nil, err
		}
		s.fill(ctx, current)
		return current, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Settings), nil
}

// Update applies a partial update and invalidates the cache.
func (s *Service) Update(ctx context.Context, patch Patch) (*Settings, error) {
	updated, err := s.repo.Upsert(ctx, patch)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Del(ctx, cacheKey).Err(); err != nil && s.logger != nil {
			s.logger.Warn("settings cache invalidation failed", slog.Any("error", err))
		}
	}
	return updated, nil
}

func (s *Service) fill(ctx context.Context, current *Settings) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(current)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey, data, s.cacheTTL).Err(); err != nil && s.logger != nil {
		s.logger.Warn("settings cache write failed", slog.Any("error", err))
	}
}
