package adapters

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dompet/ledger/internal/application/adapter"
)

// hitScript increments the counter and starts its window on the first hit.
// It returns the count and the window's remaining milliseconds.
var hitScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {n, redis.call("PTTL", KEYS[1])}
`)

type redisAttemptCounter struct {
	client *redis.Client
	prefix string
}

// NewRedisAttemptCounter shares attempt windows between every API instance.
func NewRedisAttemptCounter(client *redis.Client, prefix string) adapter.AttemptCounter {
	return &redisAttemptCounter{client: client, prefix: prefix}
}

func (c *redisAttemptCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	res, err := hitScript.Run(ctx, c.client, []string{c.prefix + key}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to count attempt: %w", err)
	}
	if len(res) != 2 {
		return 0, 0, fmt.Errorf("unexpected attempt counter reply %v", res)
	}
	left := time.Duration(res[1]) * time.Millisecond
	if left < 0 {
		left = 0
	}
	return res[0], left, nil
}

func (c *redisAttemptCounter) Reset(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

type attemptWindow struct {
	count   int64
	resetAt time.Time
}

// MemoryAttemptCounter keeps windows in process. Expired windows stay
// in memory until Cleanup runs.
type MemoryAttemptCounter struct {
	mu      sync.Mutex
	windows map[string]*attemptWindow
	now     func() time.Time
}

// NewMemoryAttemptCounter creates an empty in-process counter.
func NewMemoryAttemptCounter() *MemoryAttemptCounter {
	return &MemoryAttemptCounter{
		windows: make(map[string]*attemptWindow),
		now:     time.Now,
	}
}

func (c *MemoryAttemptCounter) Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	w, ok := c.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &attemptWindow{resetAt: now.Add(window)}
		c.windows[key] = w
	}
	w.count++
	return w.count, w.resetAt.Sub(now), nil
}

func (c *MemoryAttemptCounter) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.windows = make(map[string]*attemptWindow)
	return nil
}

// Cleanup drops windows that have ended.
func (c *MemoryAttemptCounter) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	dropped := 0
	for key, w := range c.windows {
		if !now.Before(w.resetAt) {
			delete(c.windows, key)
			dropped++
		}
	}
	return dropped
}
