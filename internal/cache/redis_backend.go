package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces cache keys when the cache shares a Redis
// instance with the persistence store
const DefaultRedisPrefix = "cache:"

// RedisBackend shares one cache between several gateway processes
type RedisBackend struct {
	client redis.UniversalClient
	prefix string
}

// RedisBackendConfig holds configuration for the Redis backend
type RedisBackendConfig struct {
	Client redis.UniversalClient // Required
	Prefix string                // Optional, defaults to DefaultRedisPrefix
}

// NewRedisBackend creates a Redis-backed cache backend
func NewRedisBackend(cfg *RedisBackendConfig) *RedisBackend {
	if cfg == nil {
		panic("RedisBackendConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisBackend{
		client: cfg.Client,
		prefix: prefix,
	}
}

func (b *RedisBackend) key(key string) string {
	return b.prefix + key
}

// Get returns the raw value stored at key
func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := b.client.Get(ctx, b.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, true, nil
}

// Set stores a raw value at key without expiration
func (b *RedisBackend) Set(ctx context.Context, key string, value []byte) error {
	if err := b.client.Set(ctx, b.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

// SetMany stores several values using a pipeline
func (b *RedisBackend) SetMany(ctx context.Context, entries map[string][]byte) error {
	if len(entries) == 0 {
		return nil
	}

	pipe := b.client.Pipeline()
	for _, key := range sortedKeys(entries) {
		pipe.Set(ctx, b.key(key), entries[key], 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set %d entries: %w", len(entries), err)
	}
	return nil
}

// Delete removes keys
func (b *RedisBackend) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = b.key(key)
	}
	if err := b.client.Del(ctx, prefixed...).Err(); err != nil {
		return fmt.Errorf("failed to delete keys: %w", err)
	}
	return nil
}

// SetAdd adds a member to a set
func (b *RedisBackend) SetAdd(ctx context.Context, set, member string) error {
	if err := b.client.SAdd(ctx, b.key(set), member).Err(); err != nil {
		return fmt.Errorf("failed to add to %s: %w", set, err)
	}
	return nil
}

// SetContains reports set membership
func (b *RedisBackend) SetContains(ctx context.Context, set, member string) (bool, error) {
	found, err := b.client.SIsMember(ctx, b.key(set), member).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", set, err)
	}
	return found, nil
}

// SetRemove removes a member from a set
func (b *RedisBackend) SetRemove(ctx context.Context, set, member string) error {
	if err := b.client.SRem(ctx, b.key(set), member).Err(); err != nil {
		return fmt.Errorf("failed to remove from %s: %w", set, err)
	}
	return nil
}
