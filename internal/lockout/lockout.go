// Package lockout tracks failed sign-in attempts per email in Redis
// and locks an account out once the configured threshold is crossed.
// Counters expire after the lockout window, so a lockout clears itself.
package lockout

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type Limiter struct {
	client *redis.Client
	window time.Duration
	prefix string
}

func New(client *redis.Client, window time.Duration) *Limiter {
	return &Limiter{
		client: client,
		window: window,
		prefix: "login_attempts:",
	}
}

// NewFromURL connects to Redis from a URL. Returns nil when the URL is
// empty, which disables lockout tracking entirely.
func NewFromURL(url string, window time.Duration) (*Limiter, error) {
	if url == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return New(redis.NewClient(opts), window), nil
}

func (l *Limiter) key(email string) string {
	return l.prefix + strings.ToLower(email)
}

// RecordFailure bumps the failure counter and returns the new count.
// The first failure in a window starts the expiry clock.
func (l *Limiter) RecordFailure(ctx context.Context, email string) (int, error) {
	if l == nil {
		return 0, nil
	}

	key := l.key(email)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return int(count), err
		}
	}
	return int(count), nil
}

// Failures returns the current failure count for an email.
func (l *Limiter) Failures(ctx context.Context, email string) (int, error) {
	if l == nil {
		return 0, nil
	}

	count, err := l.client.Get(ctx, l.key(email)).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Reset clears the counter after a successful sign-in.
func (l *Limiter) Reset(ctx context.Context, email string) error {
	if l == nil {
		return nil
	}
	return l.client.Del(ctx, l.key(email)).Err()
}
