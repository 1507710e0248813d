package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonesrussell/north-cloud/seo-monitor/internal/coordination"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/logger"
)

const releaseTimeout = 5 * time.Second

// runGuard keeps at most one run active: in-process with a flag, and across
// replicas with the Redis lock when one is configured.
type runGuard struct {
	mu      sync.Mutex
	running bool
	lock    *coordination.RunLock
	log     logger.Interface
}

func newRunGuard(lock *coordination.RunLock, log logger.Interface) *runGuard {
	return &runGuard{lock: lock, log: log}
}

// acquire claims the guard or returns ErrRunInProgress. The returned release
// func is safe to call more than once.
func (g *runGuard) acquire(ctx context.Context) (func(), error) {
	g.mu.Lock()
	if g.running {
		g.mu.Unlock()
		return nil, ErrRunInProgress
	}
	g.running = true
	g.mu.Unlock()

	var (
		lease         *coordination.Lease
		stopKeepAlive = func() {}
	)
	if g.lock != nil {
		var err error
		lease, err = g.lock.TryAcquire(ctx)
		if err != nil {
			g.clear()
			if errors.Is(err, coordination.ErrLockNotAcquired) {
				return nil, ErrRunInProgress
			}
			return nil, fmt.Errorf("acquire run lock: %w", err)
		}
		g.log.Debug("Run lock acquired", "key", g.lock.Key(), "token", lease.Token())

		// Runs can outlast the TTL; the lease is refreshed until release.
		stopKeepAlive = lease.KeepAlive(context.WithoutCancel(ctx), func(err error) {
			g.log.Warn("Failed to extend run lock", "key", g.lock.Key(), "error", err)
		})
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			stopKeepAlive()
			if lease != nil {
				releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
				defer cancel()
				if err := lease.Release(releaseCtx); err != nil {
					g.log.Warn("Failed to release run lock", "key", g.lock.Key(), "error", err)
				}
			}
			g.clear()
		})
	}, nil
}

func (g *runGuard) clear() {
	g.mu.Lock()
	g.running = false
	g.mu.Unlock()
}

// Running reports whether a run currently holds the in-process guard.
func (s *Service) Running() bool {
	s.guard.mu.Lock()
	defer s.guard.mu.Unlock()
	return s.guard.running
}
