package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// RedisStore keeps one counter per key. INCR and PTTL go out in a single
// MULTI/EXEC so the count and the remaining window are read together.
type RedisStore struct {
	client goredis.UniversalClient
}

func NewRedisStore(client goredis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) IncrementWindow(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if s.client == nil {
		return 0, 0, errors.New("ratelimit: redis client not configured")
	}
	if key == "" || window <= 0 {
		return 0, 0, fmt.Errorf("ratelimit: bad window for key %q", key)
	}

	var (
		hits *goredis.IntCmd
		left *goredis.DurationCmd
	)
	_, err := s.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		hits = pipe.Incr(ctx, key)
		left = pipe.PTTL(ctx, key)
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("ratelimit: count %s: %w", key, err)
	}

	// A fresh counter has no expiry yet. Setting it whenever it is missing
	// also repairs a key whose earlier PEXPIRE was lost.
	ttl := left.Val()
	if ttl < 0 {
		if err := s.client.PExpire(ctx, key, window).Err(); err != nil {
			return 0, 0, fmt.Errorf("ratelimit: expire %s: %w", key, err)
		}
		ttl = window
	}

	return hits.Val(), ttl, nil
}
