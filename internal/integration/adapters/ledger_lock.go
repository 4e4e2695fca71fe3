package adapters

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dompet/ledger/internal/application/adapter"
	domainerror "github.com/dompet/ledger/internal/domain/error"
)

const (
	ledgerLockPrefix = "ledger:lock:"
	ledgerLockRetry  = 25 * time.Millisecond
)

// releaseScript deletes the lock only if it still holds our token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// redisLedgerLock implements adapter.LedgerLock on top of a Redis SET NX lease.
type redisLedgerLock struct {
	client *redis.Client
	ttl    time.Duration
	wait   time.Duration
}

// NewRedisLedgerLock creates a ledger lock backed by Redis.
// ttl bounds how long a crashed holder can block the ledger, wait bounds how long Acquire retries.
func NewRedisLedgerLock(client *redis.Client, ttl, wait time.Duration) adapter.LedgerLock {
	return &redisLedgerLock{
		client: client,
		ttl:    ttl,
		wait:   wait,
	}
}

// Acquire takes the user's ledger lock, retrying until the wait budget runs out.
func (l *redisLedgerLock) Acquire(ctx context.Context, userID uuid.UUID) (func(), error) {
	key := ledgerLockPrefix + userID.String()
	token, err := randomToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate lock token: %w", err)
	}

	deadline := time.Now().Add(l.wait)
	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire ledger lock: %w", err)
		}
		if ok {
			return l.releaser(key, token), nil
		}

		if time.Now().After(deadline) {
			return nil, domainerror.ErrLedgerBusy
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(ledgerLockRetry):
		}
	}
}

func (l *redisLedgerLock) releaser(key, token string) func() {
	return func() {
		// Released on a fresh context so a cancelled request still frees the lock.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		err := releaseScript.Run(ctx, l.client, []string{key}, token).Err()
		if err != nil && !errors.Is(err, redis.Nil) {
			slog.Warn("Failed to release ledger lock", "key", key, "error", err)
		}
	}
}

func randomToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// noopLedgerLock is used when Redis is not configured.
type noopLedgerLock struct{}

// NewNoopLedgerLock returns a lock that never blocks.
// Database transactions and row locks remain the only serialization.
func NewNoopLedgerLock() adapter.LedgerLock {
	return noopLedgerLock{}
}

// Acquire always succeeds immediately.
func (noopLedgerLock) Acquire(ctx context.Context, userID uuid.UUID) (func(), error) {
	return func() {}, nil
}
