package lease

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLease implements a per-key lease on SET NX with a TTL. The TTL bounds
// how long a crashed holder can block other workers.
type RedisLease struct {
	client *redis.Client
	prefix string
}

func NewRedisLease(client *redis.Client, prefix string) *RedisLease {
	return &RedisLease{
		client: client,
		prefix: prefix,
	}
}

// Acquire returns false when another holder currently owns the key.
func (l *RedisLease) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, l.prefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lease: %w", err)
	}
	return ok, nil
}

func (l *RedisLease) Release(ctx context.Context, key string) error {
	if err := l.client.Del(ctx, l.prefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release lease: %w", err)
	}
	return nil
}
