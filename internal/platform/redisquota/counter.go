// Package redisquota implements the centralized admission-control counter
// on Redis. Counts are kept in fixed windows per (user, action) key; all
// sessions of a user share the same counter, which is what makes the quota
// safe under concurrent swiping from multiple devices.
package redisquota

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// keyPrefix namespaces quota keys in a shared Redis instance.
const keyPrefix = "quota"

// Counter is a fixed-window counter backed by Redis INCR. The first hit in
// a window sets the expiry; subsequent hits ride the same window. An error
// from Incr means the counter was unreachable, never that the caller is
// over quota — admission control treats those cases differently.
type Counter struct {
	client *redis.Client
	logger *slog.Logger
}

// NewCounter creates a Counter on the given client.
// If logger is nil, a default logger will be used.
func NewCounter(client *redis.Client, logger *slog.Logger) *Counter {
	if client == nil {
		panic("redis client cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Counter{
		client: client,
		logger: logger.With(slog.String("component", "redis_quota_counter")),
	}
}

// Incr increments the counter for (userID, action) and returns the new
// count together with the time remaining in the current window. A fresh
// window is opened with the given duration on the first hit.
func (c *Counter) Incr(ctx context.Context, userID, action string, window time.Duration) (int64, time.Duration, error) {
	key := fmt.Sprintf("%s:%s:%s", keyPrefix, action, userID)

	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	// NX so an established window keeps its original deadline.
	pipe.ExpireNX(ctx, key, window)
	ttl := pipe.PTTL(ctx, key)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, 0, fmt.Errorf("quota counter unreachable: %w", err)
	}

	count := incr.Val()
	remaining := ttl.Val()
	if remaining < 0 {
		// PTTL reports a negative value for keys without expiry; treat it
		// as a full window rather than returning nonsense to the caller.
		remaining = window
	}

	c.logger.Debug("quota counter incremented",
		slog.String("key", key),
		slog.Int64("count", count),
		slog.Duration("window_remaining", remaining))

	return count, remaining, nil
}

// Ping verifies connectivity, used at startup to log (not fail) when the
// centralized counter is down.
func (c *Counter) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
