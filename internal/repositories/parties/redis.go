package parties

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories"
)

const nextIDKey = "party:next_id"

// PartyData is the serialized form of a party in Redis
type PartyData struct {
	ID        int    `json:"id"`
	ShareExp  bool   `json:"share_exp"`
	ShareItem bool   `json:"share_item"`
	LeaderID  string `json:"leader_id"`
}

type redisRepo struct {
	client redis.UniversalClient
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed party repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}
	return &redisRepo{client: cfg.Client}
}

func (r *redisRepo) key(id int) string {
	return fmt.Sprintf("party:%d", id)
}

// Create stores a new party
func (r *redisRepo) Create(ctx context.Context, shareExp, shareItem bool, leaderID string) (int, error) {
	if leaderID == "" {
		return 0, dnderr.InvalidArgument("party leader ID is required")
	}

	id, err := r.client.Incr(ctx, nextIDKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate party ID: %w", err)
	}

	data := &PartyData{
		ID:        int(id),
		ShareExp:  shareExp,
		ShareItem: shareItem,
		LeaderID:  leaderID,
	}
	if err := r.write(ctx, data); err != nil {
		return 0, err
	}
	return data.ID, nil
}

// Get retrieves a party
func (r *redisRepo) Get(ctx context.Context, id int) (*entities.Party, error) {
	data, err := r.read(ctx, id)
	if err != nil {
		return nil, err
	}
	return entities.NewParty(data.ID, data.ShareExp, data.ShareItem, data.LeaderID), nil
}

// UpdateSetting replaces the share flags
func (r *redisRepo) UpdateSetting(ctx context.Context, id int, shareExp, shareItem bool) error {
	data, err := r.read(ctx, id)
	if err != nil {
		return err
	}
	data.ShareExp = shareExp
	data.ShareItem = shareItem
	return r.write(ctx, data)
}

// UpdateLeader replaces the leader
func (r *redisRepo) UpdateLeader(ctx context.Context, id int, leaderID string) error {
	data, err := r.read(ctx, id)
	if err != nil {
		return err
	}
	data.LeaderID = leaderID
	return r.write(ctx, data)
}

// Delete removes a party
func (r *redisRepo) Delete(ctx context.Context, id int) error {
	n, err := r.client.Del(ctx, r.key(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete party: %w", err)
	}
	if n == 0 {
		return repositories.NewRecordNotFoundError("party", id)
	}
	return nil
}

func (r *redisRepo) read(ctx context.Context, id int) (*PartyData, error) {
	raw, err := r.client.Get(ctx, r.key(id)).Result()
	if repositories.IsRedisNil(err) {
		return nil, repositories.NewRecordNotFoundError("party", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get party: %w", err)
	}

	var data PartyData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal party: %w", err)
	}
	return &data, nil
}

func (r *redisRepo) write(ctx context.Context, data *PartyData) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal party: %w", err)
	}
	if err := r.client.Set(ctx, r.key(data.ID), encoded, 0).Err(); err != nil {
		return fmt.Errorf("failed to save party: %w", err)
	}
	return nil
}
