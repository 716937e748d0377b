package storages

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories"
)

// ReservedKey is the hash of durable reservation markers, storage id to
// reserver id
const ReservedKey = "storage:reserved"

type redisRepo struct {
	client redis.UniversalClient
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed storage repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}
	return &redisRepo{client: cfg.Client}
}

func (r *redisRepo) key(id entities.StorageID) string {
	return fmt.Sprintf("storage:%s", id)
}

// GetItems returns the item slots of a container
func (r *redisRepo) GetItems(ctx context.Context, id entities.StorageID) ([]entities.CharacterItem, error) {
	raw, err := r.client.Get(ctx, r.key(id)).Result()
	if repositories.IsRedisNil(err) {
		return []entities.CharacterItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get storage items: %w", err)
	}

	var items []entities.CharacterItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal storage items: %w", err)
	}
	return items, nil
}

// UpdateItems replaces the item slots of a container
func (r *redisRepo) UpdateItems(ctx context.Context, id entities.StorageID, items []entities.CharacterItem) error {
	if items == nil {
		items = []entities.CharacterItem{}
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal storage items: %w", err)
	}
	if err := r.client.Set(ctx, r.key(id), encoded, 0).Err(); err != nil {
		return fmt.Errorf("failed to update storage items: %w", err)
	}
	return nil
}

// FindReserved returns who holds the durable reservation marker
func (r *redisRepo) FindReserved(ctx context.Context, id entities.StorageID) (string, bool, error) {
	reserver, err := r.client.HGet(ctx, ReservedKey, id.String()).Result()
	if repositories.IsRedisNil(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to find storage reservation: %w", err)
	}
	return reserver, true, nil
}

// ClaimReserved sets the marker with HSETNX. A marker already held by the
// same reserver counts as claimed.
func (r *redisRepo) ClaimReserved(ctx context.Context, id entities.StorageID, reserverID string) (string, bool, error) {
	field := id.String()
	for attempt := 0; attempt < 2; attempt++ {
		set, err := r.client.HSetNX(ctx, ReservedKey, field, reserverID).Result()
		if err != nil {
			return "", false, fmt.Errorf("failed to reserve storage: %w", err)
		}
		if set {
			return reserverID, true, nil
		}

		holder, err := r.client.HGet(ctx, ReservedKey, field).Result()
		if repositories.IsRedisNil(err) {
			// released between the two calls
			continue
		}
		if err != nil {
			return "", false, fmt.Errorf("failed to find storage reservation: %w", err)
		}
		return holder, holder == reserverID, nil
	}
	return "", false, nil
}

// DeleteReserved clears the marker of one container
func (r *redisRepo) DeleteReserved(ctx context.Context, id entities.StorageID) error {
	if err := r.client.HDel(ctx, ReservedKey, id.String()).Err(); err != nil {
		return fmt.Errorf("failed to delete storage reservation: %w", err)
	}
	return nil
}

// DeleteReservedBy clears every marker held by reserverID
func (r *redisRepo) DeleteReservedBy(ctx context.Context, reserverID string) error {
	markers, err := r.client.HGetAll(ctx, ReservedKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list storage reservations: %w", err)
	}

	var fields []string
	for field, reserver := range markers {
		if reserver == reserverID {
			fields = append(fields, field)
		}
	}
	if len(fields) == 0 {
		return nil
	}
	sort.Strings(fields)
	if err := r.client.HDel(ctx, ReservedKey, fields...).Err(); err != nil {
		return fmt.Errorf("failed to delete storage reservations of %s: %w", reserverID, err)
	}
	return nil
}

// DeleteAllReserved clears every marker
func (r *redisRepo) DeleteAllReserved(ctx context.Context) error {
	if err := r.client.Del(ctx, ReservedKey).Err(); err != nil {
		return fmt.Errorf("failed to delete storage reservations: %w", err)
	}
	return nil
}
