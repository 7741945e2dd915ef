package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// FixedWindow counts hits per key over a fixed time window. The counter key
// expires window seconds after its first hit; every hit inside the window
// increments the same counter, and a fresh window starts once it lapses.
// Key format: ratelimit:<route>:<client key>
type FixedWindow struct {
	client *redis.Client
	window time.Duration
}

// NewFixedWindow creates a FixedWindow counter wrapping the given Redis client.
func NewFixedWindow(client *redis.Client, window time.Duration) *FixedWindow {
	return &FixedWindow{client: client, window: window}
}

// Hit registers one request for key and returns the hit count inside the
// current window, this request included. INCR and the NX expire run in one
// pipeline, so concurrent hits within a window never undercount.
func (w *FixedWindow) Hit(ctx context.Context, route, key string) (int64, error) {
	counter := fmt.Sprintf("ratelimit:%s:%s", route, key)

	pipe := w.client.TxPipeline()
	incr := pipe.Incr(ctx, counter)
	pipe.ExpireNX(ctx, counter, w.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("rate window hit: %w", err)
	}

	return incr.Val(), nil
}
