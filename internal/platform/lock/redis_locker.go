// Package lock provides the distributed posting lock backed by Redis.
package lock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/bsm/redislock"
	"github.com/omarrayoubb/gateway-sub003/internal/apperrors"
	portssvc "github.com/omarrayoubb/gateway-sub003/internal/core/ports/services"
	"github.com/omarrayoubb/gateway-sub003/internal/middleware"
	"github.com/redis/go-redis/v9"
)

const (
	defaultTTL   = 30 * time.Second
	retryBackoff = 100 * time.Millisecond
	maxRetries   = 20
)

// RedisLocker obtains short-lived redislock locks, one key per journal entry.
type RedisLocker struct {
	client  *redislock.Client
	ttl     time.Duration
	backoff time.Duration
	retries int
}

var _ portssvc.EntryLocker = (*RedisLocker)(nil)

// NewRedisLocker wraps a go-redis client. A non-positive ttl falls back to 30s.
func NewRedisLocker(rdb redis.UniversalClient, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisLocker{client: redislock.New(rdb), ttl: ttl, backoff: retryBackoff, retries: maxRetries}
}

// Lock retries for about two seconds before giving up with ErrConflict.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	lk, err := l.client.Obtain(ctx, key, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(l.backoff), l.retries),
	})
	if err != nil {
		return nil, obtainError(key, err)
	}

	return func() {
		// Release with a fresh context so a cancelled request still frees the key.
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := lk.Release(releaseCtx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			middleware.GetLoggerFromCtx(ctx).Warn("Failed to release posting lock",
				slog.String("key", key), slog.String("error", err.Error()))
		}
	}, nil
}

func obtainError(key string, err error) error {
	if errors.Is(err, redislock.ErrNotObtained) {
		return fmt.Errorf("%w: %s is locked by another request", apperrors.ErrConflict, key)
	}
	return fmt.Errorf("%w: obtain lock %s: %w", apperrors.ErrInternal, key, err)
}
