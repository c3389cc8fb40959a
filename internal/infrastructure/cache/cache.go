package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/video-assistant-team/video-assistant/pkg/config"
)

// Store is a key-value cache tier with per-entry TTL. Operational failures
// degrade to a miss or no-op; the cache is an optimization, never a
// correctness dependency, so neither method returns an error.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
}

// New selects the cache backend once at startup: Redis when enabled and
// reachable, otherwise the in-process store. The choice is fixed for the
// process lifetime.
func New(cfg *config.Config, logger *zap.Logger) Store {
	if cfg.Redis.Enabled {
		rs, err := NewRedisStore(cfg, logger)
		if err == nil {
			logger.Info("redis cache tier active", zap.String("addr", cfg.GetRedisAddr()))
			return rs
		}
		logger.Warn("redis unavailable, falling back to in-memory cache", zap.Error(err))
	}
	logger.Info("in-memory cache tier active")
	return NewMemoryStore()
}
