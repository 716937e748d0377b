package friends

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/redis/go-redis/v9"

	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories"
)

type redisRepo struct {
	client redis.UniversalClient
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed friend repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}
	return &redisRepo{client: cfg.Client}
}

// heldKey maps id2 to state for the pairs held by a character
func (r *redisRepo) heldKey(id string) string {
	return fmt.Sprintf("character:%s:friends", id)
}

// heldByKey maps id1 to state for the pairs naming a character as id2
func (r *redisRepo) heldByKey(id string) string {
	return fmt.Sprintf("character:%s:friended_by", id)
}

// Upsert records the pair in state
func (r *redisRepo) Upsert(ctx context.Context, id1, id2 string, state int) error {
	if id1 == "" || id2 == "" {
		return dnderr.InvalidArgument("both character IDs are required")
	}

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, r.heldKey(id1), id2, state)
	pipe.HSet(ctx, r.heldByKey(id2), id1, state)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save friend: %w", err)
	}
	return nil
}

// Delete drops the pair id1 -> id2
func (r *redisRepo) Delete(ctx context.Context, id1, id2 string) error {
	pipe := r.client.TxPipeline()
	pipe.HDel(ctx, r.heldKey(id1), id2)
	pipe.HDel(ctx, r.heldByKey(id2), id1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete friend: %w", err)
	}
	return nil
}

// List returns the far side of the pairs in state, ordered by ID
func (r *redisRepo) List(ctx context.Context, characterID string, byID2 bool, state, skip, limit int) ([]string, error) {
	key := r.heldKey(characterID)
	if byID2 {
		key = r.heldByKey(characterID)
	}
	ids, err := r.matching(ctx, key, state)
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return repositories.Page(ids, skip, limit), nil
}

// CountByID2 counts the pairs in state naming characterID as id2
func (r *redisRepo) CountByID2(ctx context.Context, characterID string, state int) (int, error) {
	ids, err := r.matching(ctx, r.heldByKey(characterID), state)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}

func (r *redisRepo) matching(ctx context.Context, key string, state int) ([]string, error) {
	pairs, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	want := strconv.Itoa(state)
	ids := make([]string, 0, len(pairs))
	for id, s := range pairs {
		if s == want {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
