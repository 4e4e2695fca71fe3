package middleware

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dompet/ledger/internal/application/adapter"
	domainerror "github.com/dompet/ledger/internal/domain/error"
	"github.com/dompet/ledger/internal/integration/entrypoint/dto"
)

// RateLimiter caps requests per client IP within a fixed window.
type RateLimiter struct {
	counter     adapter.AttemptCounter
	maxAttempts int64
	window      time.Duration
}

// NewRateLimiter creates a limiter over counter. A non-positive maxAttempts disables limiting.
func NewRateLimiter(counter adapter.AttemptCounter, maxAttempts int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		counter:     counter,
		maxAttempts: int64(maxAttempts),
		window:      window,
	}
}

// Middleware answers 429 with a Retry-After header once the client's window is used up.
// Counter failures let the request through.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if rl.maxAttempts <= 0 {
			c.Next()
			return
		}

		client := c.ClientIP()
		if client == "" {
			client = c.Request.RemoteAddr
		}

		count, left, err := rl.counter.Hit(c.Request.Context(), client, rl.window)
		if err != nil {
			slog.Warn("Rate limiter unavailable, allowing request", "client", client, "error", err)
			c.Next()
			return
		}

		if count > rl.maxAttempts {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(left.Seconds()))))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
				Error: "Too many login attempts. Please try again later.",
				Code:  string(domainerror.ErrCodeRateLimited),
			})
			return
		}

		c.Next()
	}
}

// Reset forgets every client's window.
func (rl *RateLimiter) Reset(ctx context.Context) error {
	return rl.counter.Reset(ctx)
}

// Cleanup drops ended windows when the counter keeps them in process.
func (rl *RateLimiter) Cleanup() int {
	if sweeper, ok := rl.counter.(interface{ Cleanup() int }); ok {
		return sweeper.Cleanup()
	}
	return 0
}
