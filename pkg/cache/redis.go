package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Waynenyarky/capstone-booking/pkg/config"
)

// Connect opens a redis client from REDIS_URL, or returns nil when no redis
// is configured. Callers treat a nil *Store as cache-off.
func Connect(ctx context.Context, cfg config.RedisConfig) (*Store, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, err
	}
	return &Store{client: client}, nil
}

// Store is a thin get/set wrapper. It backs both the idempotency middleware
// and the directory listing cache.
type Store struct {
	client *redis.Client
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return val, err
}

func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, key, value, ttl).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}
