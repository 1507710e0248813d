package coordination_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jonesrussell/north-cloud/seo-monitor/internal/coordination"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, srv
}

func TestRunLock_ExclusiveUntilReleased(t *testing.T) {
	t.Parallel()
	client, _ := newClient(t)
	ctx := context.Background()

	first := coordination.NewRunLock(client, "", time.Minute)
	second := coordination.NewRunLock(client, "", time.Minute)

	lease, err := first.TryAcquire(ctx)
	require.NoError(t, err)

	_, err = second.TryAcquire(ctx)
	require.ErrorIs(t, err, coordination.ErrLockNotAcquired)

	require.NoError(t, lease.Release(ctx))

	again, err := second.TryAcquire(ctx)
	require.NoError(t, err)
	assert.NotEqual(t, lease.Token(), again.Token())
}

func TestRunLock_ReleaseAfterTakeoverFails(t *testing.T) {
	t.Parallel()
	client, srv := newClient(t)
	ctx := context.Background()

	lock := coordination.NewRunLock(client, "runs", time.Second)
	stale, err := lock.TryAcquire(ctx)
	require.NoError(t, err)

	srv.FastForward(2 * time.Second)

	fresh, err := lock.TryAcquire(ctx)
	require.NoError(t, err)

	require.ErrorIs(t, stale.Release(ctx), coordination.ErrLockNotHeld)
	require.ErrorIs(t, stale.Extend(ctx, time.Minute), coordination.ErrLockNotHeld)
	require.NoError(t, fresh.Extend(ctx, time.Minute))
	assert.Equal(t, time.Minute, srv.TTL("runs"))
}

func TestNewRunLock_Defaults(t *testing.T) {
	t.Parallel()
	client, srv := newClient(t)

	lock := coordination.NewRunLock(client, "", 0)
	assert.Equal(t, coordination.DefaultRunLockKey, lock.Key())

	_, err := lock.TryAcquire(context.Background())
	require.NoError(t, err)
	assert.Equal(t, coordination.DefaultLockTTL, srv.TTL(coordination.DefaultRunLockKey))
}

func TestLease_KeepAliveOutlivesTTL(t *testing.T) {
	t.Parallel()
	client, srv := newClient(t)
	ctx := context.Background()

	lock := coordination.NewRunLock(client, "held", 300*time.Millisecond)
	lease, err := lock.TryAcquire(ctx)
	require.NoError(t, err)

	stop := lease.KeepAlive(ctx, func(err error) { t.Errorf("unexpected extend error: %v", err) })

	srv.FastForward(250 * time.Millisecond)
	require.True(t, srv.Exists("held"))

	assert.Eventually(t, func() bool {
		return srv.TTL("held") > 250*time.Millisecond
	}, 2*time.Second, 10*time.Millisecond)

	stop()
	srv.FastForward(time.Second)
	assert.False(t, srv.Exists("held"))
}

func TestLease_KeepAliveEndsWhenLockLost(t *testing.T) {
	t.Parallel()
	client, srv := newClient(t)
	ctx := context.Background()

	lock := coordination.NewRunLock(client, "lost", 300*time.Millisecond)
	stale, err := lock.TryAcquire(ctx)
	require.NoError(t, err)

	srv.FastForward(time.Second)
	_, err = lock.TryAcquire(ctx)
	require.NoError(t, err)

	errs := make(chan error, 1)
	stop := stale.KeepAlive(ctx, func(err error) { errs <- err })
	defer stop()

	select {
	case err := <-errs:
		require.ErrorIs(t, err, coordination.ErrLockNotHeld)
	case <-time.After(2 * time.Second):
		t.Fatal("keep-alive did not report the lost lock")
	}
}
