package out

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"tutorcast/internal/modules/progress/domain"
	progressout "tutorcast/internal/modules/progress/port/out"
)

// RedisStore scopes page records to a session by expiring them after ttl.
// The tutor preference never expires.
type RedisStore struct {
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStore(ctx context.Context, addr string, ttl time.Duration) (progressout.KVStore, error) {
	if addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisStore{rdb: rdb, prefix: "tutorcast:", ttl: ttl}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.Get(ctx, s.prefix+key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get: %w", err)
	}
	return v, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.rdb.Set(ctx, s.prefix+key, value, s.expiry(key)).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (s *RedisStore) expiry(key string) time.Duration {
	if key == domain.TutorPreferenceKey {
		return 0
	}
	return s.ttl
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
