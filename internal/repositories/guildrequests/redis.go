package guildrequests

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
)

type redisRepo struct {
	client redis.UniversalClient
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed guild request repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}
	return &redisRepo{client: cfg.Client}
}

// key is the sorted set of requester ids scored by request time
func (r *redisRepo) key(guildID int) string {
	return fmt.Sprintf("guild:%d:requests", guildID)
}

// Create records a request
func (r *redisRepo) Create(ctx context.Context, guildID int, requesterID string, at int64) error {
	if requesterID == "" {
		return dnderr.InvalidArgument("requester ID is required")
	}
	err := r.client.ZAddNX(ctx, r.key(guildID), redis.Z{Score: float64(at), Member: requesterID}).Err()
	if err != nil {
		return fmt.Errorf("failed to create guild request: %w", err)
	}
	return nil
}

// Delete drops one request
func (r *redisRepo) Delete(ctx context.Context, guildID int, requesterID string) error {
	if err := r.client.ZRem(ctx, r.key(guildID), requesterID).Err(); err != nil {
		return fmt.Errorf("failed to delete guild request: %w", err)
	}
	return nil
}

// List returns requester IDs, oldest request first
func (r *redisRepo) List(ctx context.Context, guildID, skip, limit int) ([]string, error) {
	if skip < 0 {
		skip = 0
	}
	stop := int64(-1)
	if limit > 0 {
		stop = int64(skip + limit - 1)
	}
	ids, err := r.client.ZRange(ctx, r.key(guildID), int64(skip), stop).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list guild requests: %w", err)
	}
	return ids, nil
}

// Count counts a guild's pending requests
func (r *redisRepo) Count(ctx context.Context, guildID int) (int, error) {
	n, err := r.client.ZCard(ctx, r.key(guildID)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count guild requests: %w", err)
	}
	return int(n), nil
}

// DeleteAll drops every request of a guild
func (r *redisRepo) DeleteAll(ctx context.Context, guildID int) error {
	if err := r.client.Del(ctx, r.key(guildID)).Err(); err != nil {
		return fmt.Errorf("failed to delete guild requests: %w", err)
	}
	return nil
}
