// File: utils/session_store.go
package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// SessionStore keeps per-user portal state in Redis under two scopes: a
// persistent scope for remembered sign-ins and a session scope for
// session-only sign-ins. A token lives under exactly one scope at a time;
// every write clears the sibling scope so a signed-out session can never be
// resurrected from a stale copy.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a store backed by the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

func persistentKey(userID, key string) string {
	return PersistentPrefix + userID + ":" + key
}

func sessionKey(userID, key string) string {
	return SessionPrefix + userID + ":" + key
}

// SetToken stores the bearer token for a user. With remember set the token
// goes to the persistent scope, otherwise to the session scope. The write
// happens first, then the sibling scope is cleared.
func (s *SessionStore) SetToken(ctx context.Context, userID, token string, remember bool) error {
	write, clear := persistentKey(userID, KeyToken), sessionKey(userID, KeyToken)
	ttl := PersistentTTL
	if !remember {
		write, clear = clear, write
		ttl = SessionTTL
	}
	if err := s.client.Set(ctx, write, token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	if err := s.client.Del(ctx, clear).Err(); err != nil {
		return fmt.Errorf("failed to clear sibling token scope: %w", err)
	}
	return nil
}

// Token returns the live token for a user and whether it is remembered.
// The persistent scope is consulted first; under the invariant at most one
// scope holds a value.
func (s *SessionStore) Token(ctx context.Context, userID string) (string, bool, error) {
	token, err := s.client.Get(ctx, persistentKey(userID, KeyToken)).Result()
	if err == nil {
		return token, true, nil
	}
	if err != redis.Nil {
		return "", false, err
	}
	token, err = s.client.Get(ctx, sessionKey(userID, KeyToken)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return token, false, nil
}

// ClearToken removes the token from both scopes.
func (s *SessionStore) ClearToken(ctx context.Context, userID string) error {
	return s.client.Del(ctx, persistentKey(userID, KeyToken), sessionKey(userID, KeyToken)).Err()
}

// Set stores a persistent-scope value, such as the pending payment bridge IDs
// or the in-progress meeting form echo.
func (s *SessionStore) Set(ctx context.Context, userID, key, value string) error {
	return s.client.Set(ctx, persistentKey(userID, key), value, PersistentTTL).Err()
}

// SetWithTTL stores a persistent-scope value with an explicit lifetime.
func (s *SessionStore) SetWithTTL(ctx context.Context, userID, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, persistentKey(userID, key), value, ttl).Err()
}

// Get returns a persistent-scope value, or empty when absent.
func (s *SessionStore) Get(ctx context.Context, userID, key string) (string, error) {
	val, err := s.client.Get(ctx, persistentKey(userID, key)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Delete removes a persistent-scope value.
func (s *SessionStore) Delete(ctx context.Context, userID string, keys ...string) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = persistentKey(userID, k)
	}
	return s.client.Del(ctx, full...).Err()
}
