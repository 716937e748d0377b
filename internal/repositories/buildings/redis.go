package buildings

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
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

// NewRedisRepository creates a new Redis-backed building repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}
	return &redisRepo{client: cfg.Client}
}

// key is the hash of buildings on one map instance, building id to JSON
func (r *redisRepo) key(loc entities.BuildingLocation) string {
	return fmt.Sprintf("buildings:%s:%s", loc.Channel, loc.MapName)
}

// Create places a new building
func (r *redisRepo) Create(ctx context.Context, loc entities.BuildingLocation, building *entities.Building) error {
	if building == nil || building.ID == "" {
		return dnderr.InvalidArgument("building ID is required")
	}
	encoded, err := json.Marshal(building)
	if err != nil {
		return fmt.Errorf("failed to marshal building: %w", err)
	}

	created, err := r.client.HSetNX(ctx, r.key(loc), building.ID, encoded).Result()
	if err != nil {
		return fmt.Errorf("failed to create building: %w", err)
	}
	if !created {
		return dnderr.AlreadyExistsf("building with ID '%s' already exists", building.ID).
			WithMeta("building_id", building.ID)
	}
	return nil
}

// Update overwrites an existing building
func (r *redisRepo) Update(ctx context.Context, loc entities.BuildingLocation, building *entities.Building) error {
	if building == nil || building.ID == "" {
		return dnderr.InvalidArgument("building ID is required")
	}

	exists, err := r.client.HExists(ctx, r.key(loc), building.ID).Result()
	if err != nil {
		return fmt.Errorf("failed to check building existence: %w", err)
	}
	if !exists {
		return repositories.NewRecordNotFoundError("building", building.ID)
	}

	encoded, err := json.Marshal(building)
	if err != nil {
		return fmt.Errorf("failed to marshal building: %w", err)
	}
	if err := r.client.HSet(ctx, r.key(loc), building.ID, encoded).Err(); err != nil {
		return fmt.Errorf("failed to update building: %w", err)
	}
	return nil
}

// Delete removes a building
func (r *redisRepo) Delete(ctx context.Context, loc entities.BuildingLocation, id string) error {
	n, err := r.client.HDel(ctx, r.key(loc), id).Result()
	if err != nil {
		return fmt.Errorf("failed to delete building: %w", err)
	}
	if n == 0 {
		return repositories.NewRecordNotFoundError("building", id)
	}
	return nil
}

// List returns every building of a map instance
func (r *redisRepo) List(ctx context.Context, loc entities.BuildingLocation) ([]entities.Building, error) {
	raw, err := r.client.HGetAll(ctx, r.key(loc)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list buildings: %w", err)
	}

	list := make([]entities.Building, 0, len(raw))
	for id, data := range raw {
		var building entities.Building
		if err := json.Unmarshal([]byte(data), &building); err != nil {
			return nil, fmt.Errorf("failed to unmarshal building %s: %w", id, err)
		}
		list = append(list, building)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}
