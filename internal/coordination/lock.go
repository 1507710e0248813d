// Package coordination provides the Redis lock that keeps monitoring runs
// exclusive across replicas.
package coordination

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultRunLockKey is the key guarding monitoring runs.
	DefaultRunLockKey = "seo-monitor:run-lock"

	// DefaultLockTTL bounds how long a crashed holder can block other replicas.
	DefaultLockTTL = 6 * time.Hour

	// keepAliveDivisor sets the refresh cadence as a fraction of the TTL.
	keepAliveDivisor = 3
)

var (
	// ErrLockNotAcquired is returned when another holder owns the lock.
	ErrLockNotAcquired = errors.New("lock not acquired")

	// ErrLockNotHeld is returned when releasing or extending a lock this holder no longer owns.
	ErrLockNotHeld = errors.New("lock not held")
)

var (
	releaseScript = redis.NewScript(`
		if redis.call("get", KEYS[1]) == ARGV[1] then
			return redis.call("del", KEYS[1])
		else
			return 0
		end
	`)

	extendScript = redis.NewScript(`
		if redis.call("get", KEYS[1]) == ARGV[1] then
			return redis.call("pexpire", KEYS[1], ARGV[2])
		else
			return 0
		end
	`)
)

// RunLock is a non-blocking Redis mutex. Each acquisition gets its own token
// so a holder can only release what it acquired.
type RunLock struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRunLock creates a run lock on key. Zero values fall back to the defaults.
func NewRunLock(client *redis.Client, key string, ttl time.Duration) *RunLock {
	if key == "" {
		key = DefaultRunLockKey
	}
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	return &RunLock{client: client, key: key, ttl: ttl}
}

// Lease is one held acquisition of a RunLock.
type Lease struct {
	lock  *RunLock
	token string
}

// TryAcquire takes the lock without waiting. It returns ErrLockNotAcquired
// when another holder owns it.
func (l *RunLock) TryAcquire(ctx context.Context) (*Lease, error) {
	token := uuid.New().String()
	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !ok {
		return nil, ErrLockNotAcquired
	}
	return &Lease{lock: l, token: token}, nil
}

// Key returns the lock key.
func (l *RunLock) Key() string {
	return l.key
}

// Release frees the lock if this lease still holds it.
func (le *Lease) Release(ctx context.Context) error {
	result, err := releaseScript.Run(ctx, le.lock.client, []string{le.lock.key}, le.token).Int()
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if result == 0 {
		return ErrLockNotHeld
	}
	return nil
}

// Extend pushes the expiry out to ttl from now if this lease still holds the lock.
func (le *Lease) Extend(ctx context.Context, ttl time.Duration) error {
	result, err := extendScript.Run(ctx, le.lock.client, []string{le.lock.key}, le.token, ttl.Milliseconds()).Int()
	if err != nil {
		return fmt.Errorf("failed to extend lock: %w", err)
	}
	if result == 0 {
		return ErrLockNotHeld
	}
	return nil
}

// KeepAlive refreshes the lease to the full TTL at a third of the TTL until
// stop is called. Refresh failures go to onErr; losing the lock ends the loop.
// stop blocks until the loop has exited.
func (le *Lease) KeepAlive(ctx context.Context, onErr func(error)) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(le.lock.ttl / keepAliveDivisor)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				err := le.Extend(ctx, le.lock.ttl)
				if err == nil {
					continue
				}
				if ctx.Err() != nil {
					return
				}
				if onErr != nil {
					onErr(err)
				}
				if errors.Is(err, ErrLockNotHeld) {
					return
				}
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

// Token identifies the lease.
func (le *Lease) Token() string {
	return le.token
}
