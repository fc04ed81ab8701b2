package security

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"event-studio/internal/status"

	"github.com/redis/go-redis/v9"
)

// RateLimiter caps expensive AI generation calls per creator using a
// fixed Redis counter window.
type RateLimiter struct {
	redis  *redis.Client
	limit  int
	window time.Duration
}

func NewRateLimiter(redisClient *redis.Client, limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		limit:  limit,
		window: window,
	}
}

// AllowGeneration consumes one generation slot for the creator and
// returns status.ErrRateLimitExceeded once the window is exhausted.
// Redis failures let the request through; the limiter protects spend,
// it is not an availability dependency.
func (r *RateLimiter) AllowGeneration(ctx context.Context, creatorID string) error {
	key := fmt.Sprintf("genlimit:%s", creatorID)

	count, err := r.redis.Incr(ctx, key).Result()
	if err != nil {
		slog.Warn("rate limiter unavailable, allowing request", "creator_id", creatorID, "error", err)
		return nil
	}

	if count == 1 {
		r.redis.Expire(ctx, key, r.window)
	}
	if count > int64(r.limit) {
		return status.ErrRateLimitExceeded
	}

	return nil
}
