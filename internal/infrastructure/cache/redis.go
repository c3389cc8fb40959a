package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/video-assistant-team/video-assistant/pkg/config"
)

// keyPrefix namespaces every key this application writes into a shared
// Redis instance.
const keyPrefix = "vidbot:"

// RedisStore is the networked cache tier.
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

// NewRedisStore connects to Redis and verifies the connection. An error here
// means the caller should fall back to the in-process tier.
func NewRedisStore(cfg *config.Config, logger *zap.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{client: client, logger: logger}, nil
}

// Get retrieves a value; any Redis failure is logged and treated as a miss.
func (rs *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := rs.client.Get(ctx, keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		rs.logger.Warn("redis get failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return val, true
}

// Set stores a value with TTL; failures are logged and dropped.
func (rs *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := rs.client.Set(ctx, keyPrefix+key, value, ttl).Err(); err != nil {
		rs.logger.Warn("redis set failed", zap.String("key", key), zap.Error(err))
	}
}

// Close releases the underlying connection pool.
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}
