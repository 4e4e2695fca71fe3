package adapter

import (
	"context"
	"time"
)

// AttemptCounter counts attempts per key in fixed windows.
type AttemptCounter interface {
	// Hit records one attempt. It returns the attempts seen in the key's
	// current window, including this one, and how long that window has left.
	Hit(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)

	// Reset forgets every key.
	Reset(ctx context.Context) error
}
