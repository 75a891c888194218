package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrRateLimited = errors.New("login rate limited")
	ErrUnavailable = errors.New("login limiter unavailable")
)

type LoginConfig struct {
	MaxAttempts int
	Lockout     time.Duration
}

// LoginLimiter counts failed logins per client in Redis. A nil limiter allows everything.
type LoginLimiter struct {
	redis       redis.UniversalClient
	maxAttempts int
	lockout     time.Duration
}

func NewLoginLimiter(redisClient redis.UniversalClient, cfg LoginConfig) *LoginLimiter {
	return &LoginLimiter{
		redis:       redisClient,
		maxAttempts: cfg.MaxAttempts,
		lockout:     cfg.Lockout,
	}
}

// NewRedisClient parses a redis:// URL.
func NewRedisClient(ctx context.Context, rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse REDIS_URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

func (l *LoginLimiter) key(client string) string {
	return "login:" + client
}

func (l *LoginLimiter) Check(ctx context.Context, client string) error {
	if l == nil || l.redis == nil {
		return nil
	}
	count, err := l.redis.Get(ctx, l.key(client)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if int(count) >= l.maxAttempts {
		return ErrRateLimited
	}
	return nil
}

func (l *LoginLimiter) RecordFailure(ctx context.Context, client string) error {
	if l == nil || l.redis == nil {
		return nil
	}
	count, err := l.redis.Incr(ctx, l.key(client)).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if count == 1 {
		if err := l.redis.Expire(ctx, l.key(client), l.lockout).Err(); err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
	}
	return nil
}

func (l *LoginLimiter) Reset(ctx context.Context, client string) error {
	if l == nil || l.redis == nil {
		return nil
	}
	if err := l.redis.Del(ctx, l.key(client)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
