package ratelimit

import (
	"context"
	"fmt"
	"time"
)

// WindowStore counts hits in fixed expiring windows.
type WindowStore interface {
	IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// Limiter allows at most max hits per key within window.
type Limiter struct {
	store  WindowStore
	prefix string
	max    int
	window time.Duration
}

func NewLimiter(store WindowStore, prefix string, max int, window time.Duration) *Limiter {
	if max < 0 {
		max = 0
	}

	return &Limiter{
		store:  store,
		prefix: prefix,
		max:    max,
		window: window,
	}
}

// Allow records a hit for key. When the limit is exceeded it returns false and
// how long until the window resets. A zero max disables limiting.
func (l *Limiter) Allow(ctx context.Context, key string) (time.Duration, bool, error) {
	if l.max == 0 {
		return 0, true, nil
	}
	if key == "" {
		return 0, false, fmt.Errorf("rate key is required")
	}
	if l.store == nil {
		return 0, false, fmt.Errorf("rate limiter store is nil")
	}

	count, ttl, err := l.store.IncrementWindow(ctx, "rate:"+l.prefix+":"+key, l.window)
	if err != nil {
		return 0, false, err
	}

	if count > int64(l.max) {
		if ttl <= 0 {
			ttl = l.window
		}
		return ttl, false, nil
	}

	return 0, true, nil
}
