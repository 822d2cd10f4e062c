package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
)

const (
	redisLockPrefix = "invoice-import:lock:"
	lockTTL         = 10 * time.Second
	lockRetryDelay  = 25 * time.Millisecond
	lockMaxRetries  = 200
)

// ErrLockTimeout is returned when a session lock could not be obtained in time
var ErrLockTimeout = errors.New("session is locked by another request")

// RedisLocker serializes session updates across every instance sharing a Redis
type RedisLocker struct {
	locker *redislock.Client
}

// Locker returns a locker using the store's Redis connection
func (r *RedisStore) Locker() *RedisLocker {
	return &RedisLocker{locker: redislock.New(r.client)}
}

// Lock blocks until the session lock is held or the retries run out
func (l *RedisLocker) Lock(ctx context.Context, id string) (func(), error) {
	lock, err := l.locker.Obtain(ctx, redisLockPrefix+id, lockTTL, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(lockRetryDelay), lockMaxRetries),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrLockTimeout
	}
	if err != nil {
		return nil, fmt.Errorf("redis lock: %w", err)
	}

	return func() {
		// Release after a request was cancelled still has to reach Redis
		_ = lock.Release(context.WithoutCancel(ctx))
	}, nil
}
