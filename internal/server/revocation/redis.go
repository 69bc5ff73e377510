package revocation

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisDenylist stores revoked tokens in Redis; TTL handling is delegated to
// the server so entries vanish on their own.
type RedisDenylist struct {
	client *redis.Client
}

// NewRedisDenylist constructs a denylist from a Redis URL
// (e.g. "redis://localhost:6379/0") and verifies connectivity.
func NewRedisDenylist(ctx context.Context, redisURL string) (*RedisDenylist, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return &RedisDenylist{client: client}, nil
}

func (d *RedisDenylist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Already past expiry; nothing to record.
		return nil
	}
	return d.client.Set(ctx, key(token), "1", ttl).Err()
}

func (d *RedisDenylist) IsRevoked(ctx context.Context, token string) (bool, error) {
	err := d.client.Get(ctx, key(token)).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Close releases the underlying Redis connection.
func (d *RedisDenylist) Close() error {
	return d.client.Close()
}
