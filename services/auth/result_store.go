package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"auxin/models"

	"github.com/go-redis/redis/v8"
)

const resultPrefix = "googleAuthResult:"

// ResultStore is the shared out-of-band channel for handshake completion: the
// callback route records every result here so the poll path can find it even
// when the direct delivery misses its waiter (different instance, waiter not
// yet attached). Records carry a write timestamp and are only honored within
// the freshness window.
type ResultStore struct {
	Client    *redis.Client
	Freshness time.Duration
	RecordTTL time.Duration
}

// Put records a handshake result, stamping it with the current time.
func (rs *ResultStore) Put(ctx context.Context, state string, result models.GoogleAuthResult) error {
	result.Timestamp = time.Now()
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal auth result: %w", err)
	}
	if err := rs.Client.Set(ctx, resultPrefix+state, data, rs.RecordTTL).Err(); err != nil {
		return fmt.Errorf("failed to store auth result: %w", err)
	}
	return nil
}

// Take consumes a fresh result for the state. A record older than the
// freshness window is deleted and reported as absent; nothing downstream may
// act on a stale record.
func (rs *ResultStore) Take(ctx context.Context, state string) (*models.GoogleAuthResult, bool) {
	key := resultPrefix + state
	data, err := rs.Client.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}

	var result models.GoogleAuthResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		rs.Client.Del(ctx, key)
		return nil, false
	}
	if !result.Fresh(time.Now(), rs.Freshness) {
		rs.Client.Del(ctx, key)
		return nil, false
	}

	rs.Client.Del(ctx, key)
	return &result, true
}

// Purge drops any record for the state, fresh or stale.
func (rs *ResultStore) Purge(ctx context.Context, state string) error {
	return rs.Client.Del(ctx, resultPrefix+state).Err()
}
