// Package ratelimit throttles repeated failed login attempts per handle,
// backed by redis counters with a sliding expiry window.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	// ErrRateLimited means the handle exceeded the attempt budget inside
	// the window.
	ErrRateLimited = errors.New("too many login attempts")

	errRedisUnavailable = errors.New("rate limiter redis unavailable")
)

// LoginLimiter counts login attempts per presented handle. A nil *LoginLimiter
// is a no-op, so callers don't branch on whether throttling is configured.
type LoginLimiter struct {
	redis       *redis.Client
	maxAttempts int
	window      time.Duration
}

func NewLoginLimiter(redisClient *redis.Client, maxAttempts int, window time.Duration) *LoginLimiter {
	return &LoginLimiter{
		redis:       redisClient,
		maxAttempts: maxAttempts,
		window:      window,
	}
}

// Enforce records one attempt for the handle and fails once the budget for
// the current window is exhausted.
func (l *LoginLimiter) Enforce(ctx context.Context, handle string) error {
	if l == nil || l.redis == nil {
		return nil
	}

	key := loginKey(handle)
	count, err := l.redis.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("%w: %v", errRedisUnavailable, err)
	}

	if count == 1 {
		if err := l.redis.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("%w: %v", errRedisUnavailable, err)
		}
	}

	if count > int64(l.maxAttempts) {
		return ErrRateLimited
	}

	return nil
}

// Reset clears the counter for a handle after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, handle string) error {
	if l == nil || l.redis == nil {
		return nil
	}
	if err := l.redis.Del(ctx, loginKey(handle)).Err(); err != nil {
		return fmt.Errorf("%w: %v", errRedisUnavailable, err)
	}
	return nil
}

func loginKey(handle string) string {
	return "login:" + handle
}
