package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/dompet/ledger/internal/domain/error"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisLedgerLock_AcquireAndRelease(t *testing.T) {
	mr, client := newTestRedis(t)
	lock := NewRedisLedgerLock(client, time.Second, 100*time.Millisecond)
	userID := uuid.New()

	release, err := lock.Acquire(context.Background(), userID)
	require.NoError(t, err)
	assert.True(t, mr.Exists(ledgerLockPrefix+userID.String()))

	release()
	assert.False(t, mr.Exists(ledgerLockPrefix+userID.String()))
}

func TestRedisLedgerLock_BusyWhenHeld(t *testing.T) {
	_, client := newTestRedis(t)
	lock := NewRedisLedgerLock(client, time.Second, 60*time.Millisecond)
	userID := uuid.New()

	release, err := lock.Acquire(context.Background(), userID)
	require.NoError(t, err)
	defer release()

	_, err = lock.Acquire(context.Background(), userID)
	assert.True(t, errors.Is(err, domainerror.ErrLedgerBusy))
	assert.True(t, errors.Is(err, domainerror.ErrBusy))
}

func TestRedisLedgerLock_UsersAreIndependent(t *testing.T) {
	_, client := newTestRedis(t)
	lock := NewRedisLedgerLock(client, time.Second, 50*time.Millisecond)

	releaseA, err := lock.Acquire(context.Background(), uuid.New())
	require.NoError(t, err)
	defer releaseA()

	releaseB, err := lock.Acquire(context.Background(), uuid.New())
	require.NoError(t, err)
	releaseB()
}

func TestRedisLedgerLock_WaitsForRelease(t *testing.T) {
	_, client := newTestRedis(t)
	lock := NewRedisLedgerLock(client, time.Second, time.Second)
	userID := uuid.New()

	release, err := lock.Acquire(context.Background(), userID)
	require.NoError(t, err)

	go func() {
		time.Sleep(50 * time.Millisecond)
		release()
	}()

	second, err := lock.Acquire(context.Background(), userID)
	require.NoError(t, err)
	second()
}

func TestRedisLedgerLock_ReleaseKeepsForeignLease(t *testing.T) {
	mr, client := newTestRedis(t)
	lock := NewRedisLedgerLock(client, time.Second, 50*time.Millisecond)
	userID := uuid.New()
	key := ledgerLockPrefix + userID.String()

	release, err := lock.Acquire(context.Background(), userID)
	require.NoError(t, err)

	// Simulate expiry followed by another holder taking the lease.
	mr.Del(key)
	require.NoError(t, mr.Set(key, "someone-else"))

	release()
	got, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}

func TestRedisLedgerLock_ExpiresAfterTTL(t *testing.T) {
	mr, client := newTestRedis(t)
	lock := NewRedisLedgerLock(client, 200*time.Millisecond, 50*time.Millisecond)
	userID := uuid.New()

	_, err := lock.Acquire(context.Background(), userID)
	require.NoError(t, err)

	mr.FastForward(time.Second)

	release, err := lock.Acquire(context.Background(), userID)
	require.NoError(t, err)
	release()
}

func TestNoopLedgerLock(t *testing.T) {
	lock := NewNoopLedgerLock()
	release, err := lock.Acquire(context.Background(), uuid.New())
	require.NoError(t, err)
	release()
}
