package characters

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories"
)

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client redis.UniversalClient
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed character repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}
	return &redisRepo{client: cfg.Client}
}

// key generates the Redis key for a character
func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("character:%s", id)
}

// nameKey maps a lowercased character name to its ID
func (r *redisRepo) nameKey(name string) string {
	return fmt.Sprintf("character:name:%s", strings.ToLower(name))
}

// userCharactersKey lists a user's characters in creation order
func (r *redisRepo) userCharactersKey(userID string) string {
	return fmt.Sprintf("user:%s:characters", userID)
}

// partyMembersKey lists party members in join order
func (r *redisRepo) partyMembersKey(partyID int) string {
	return fmt.Sprintf("party:%d:members", partyID)
}

// guildMembersKey is the set of guild member IDs
func (r *redisRepo) guildMembersKey(guildID int) string {
	return fmt.Sprintf("guild:%d:members", guildID)
}

// Create stores a new character
func (r *redisRepo) Create(ctx context.Context, character *entities.PlayerCharacter) error {
	if character == nil {
		return dnderr.InvalidArgument("character cannot be nil")
	}
	if character.ID == "" || character.UserID == "" || character.Name == "" {
		return dnderr.InvalidArgument("character ID, user ID and name are required")
	}

	exists, err := r.client.Exists(ctx, r.key(character.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check character existence: %w", err)
	}
	if exists > 0 {
		return dnderr.AlreadyExistsf("character with ID '%s' already exists", character.ID).
			WithMeta("character_id", character.ID)
	}

	claimed, err := r.client.SetNX(ctx, r.nameKey(character.Name), character.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to claim character name: %w", err)
	}
	if !claimed {
		return dnderr.AlreadyExistsf("character name '%s' already exists", character.Name).
			WithMeta("name", character.Name)
	}

	data, err := json.Marshal(character)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(character.ID), data, 0)
	pipe.RPush(ctx, r.userCharactersKey(character.UserID), character.ID)
	r.queueMembership(ctx, pipe, nil, character)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create character: %w", err)
	}
	return nil
}

// Get retrieves a character by ID
func (r *redisRepo) Get(ctx context.Context, id string) (*entities.PlayerCharacter, error) {
	if id == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}

	raw, err := r.client.Get(ctx, r.key(id)).Result()
	if repositories.IsRedisNil(err) {
		return nil, repositories.NewRecordNotFoundError("character", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get character: %w", err)
	}

	var character entities.PlayerCharacter
	if err := json.Unmarshal([]byte(raw), &character); err != nil {
		return nil, fmt.Errorf("failed to unmarshal character: %w", err)
	}
	return &character, nil
}

// ListIDsByUser returns a user's character IDs in creation order
func (r *redisRepo) ListIDsByUser(ctx context.Context, userID string) ([]string, error) {
	if userID == "" {
		return nil, dnderr.InvalidArgument("user ID is required")
	}
	ids, err := r.client.LRange(ctx, r.userCharactersKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list character IDs: %w", err)
	}
	return ids, nil
}

// Update overwrites an existing character's progress
func (r *redisRepo) Update(ctx context.Context, character *entities.PlayerCharacter) (*entities.PlayerCharacter, error) {
	if character == nil {
		return nil, dnderr.InvalidArgument("character cannot be nil")
	}
	existing, err := r.Get(ctx, character.ID)
	if err != nil {
		return nil, err
	}

	next := character.Clone()
	keepIdentity(next, existing)
	if err := r.save(ctx, existing, next); err != nil {
		return nil, err
	}
	return next, nil
}

// Delete removes a character
func (r *redisRepo) Delete(ctx context.Context, userID, id string) error {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return repositories.NewRecordNotFoundError("character", id)
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.key(id), r.nameKey(existing.Name))
	pipe.LRem(ctx, r.userCharactersKey(userID), 0, id)
	r.queueMembership(ctx, pipe, existing, nil)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete character: %w", err)
	}
	return nil
}

// FindName reports whether a character name is taken
func (r *redisRepo) FindName(ctx context.Context, name string) (bool, error) {
	n, err := r.client.Exists(ctx, r.nameKey(name)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check character name: %w", err)
	}
	return n > 0, nil
}

// GetIDByName resolves a character name to its ID
func (r *redisRepo) GetIDByName(ctx context.Context, name string) (string, error) {
	id, err := r.client.Get(ctx, r.nameKey(name)).Result()
	if repositories.IsRedisNil(err) {
		return "", repositories.NewRecordNotFoundError("character_name", name)
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve character name: %w", err)
	}
	return id, nil
}

// UpdateParty moves a character into a party
func (r *redisRepo) UpdateParty(ctx context.Context, id string, partyID int) error {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	next := existing.Clone()
	next.PartyID = partyID
	return r.save(ctx, existing, next)
}

// UpdateGuild moves a character into a guild with a role
func (r *redisRepo) UpdateGuild(ctx context.Context, id string, guildID, role int) error {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	next := existing.Clone()
	next.GuildID = guildID
	next.GuildRole = role
	if guildID == 0 {
		next.GuildRole = 0
	}
	return r.save(ctx, existing, next)
}

// UpdateUnmuteTime sets the unix time a character's chat mute ends
func (r *redisRepo) UpdateUnmuteTime(ctx context.Context, id string, unmuteTime int64) error {
	existing, err := r.Get(ctx, id)
	if err != nil {
		return err
	}
	next := existing.Clone()
	next.UnmuteTime = unmuteTime
	return r.save(ctx, existing, next)
}

// ListByParty returns party members in join order
func (r *redisRepo) ListByParty(ctx context.Context, partyID int) ([]*entities.PlayerCharacter, error) {
	ids, err := r.client.LRange(ctx, r.partyMembersKey(partyID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list party members: %w", err)
	}
	return r.getMany(ctx, ids)
}

// ListByGuild returns guild members ordered by ID
func (r *redisRepo) ListByGuild(ctx context.Context, guildID int) ([]*entities.PlayerCharacter, error) {
	ids, err := r.client.SMembers(ctx, r.guildMembersKey(guildID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list guild members: %w", err)
	}
	sort.Strings(ids)
	return r.getMany(ctx, ids)
}

// ClearParty removes every member from a party
func (r *redisRepo) ClearParty(ctx context.Context, partyID int) error {
	members, err := r.ListByParty(ctx, partyID)
	if err != nil {
		return err
	}
	for _, m := range members {
		if err := r.UpdateParty(ctx, m.ID, 0); err != nil {
			return err
		}
	}
	return r.client.Del(ctx, r.partyMembersKey(partyID)).Err()
}

// ClearGuild removes every member from a guild
func (r *redisRepo) ClearGuild(ctx context.Context, guildID int) error {
	members, err := r.ListByGuild(ctx, guildID)
	if err != nil {
		return err
	}
	for _, m := range members {
		if err := r.UpdateGuild(ctx, m.ID, 0, 0); err != nil {
			return err
		}
	}
	return r.client.Del(ctx, r.guildMembersKey(guildID)).Err()
}

// getMany loads characters by ID, skipping IDs whose record is gone
func (r *redisRepo) getMany(ctx context.Context, ids []string) ([]*entities.PlayerCharacter, error) {
	characters := make([]*entities.PlayerCharacter, 0, len(ids))
	for _, id := range ids {
		character, err := r.Get(ctx, id)
		if dnderr.IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		characters = append(characters, character)
	}
	return characters, nil
}

// save writes next and moves it between member indexes when its party or
// guild changed
func (r *redisRepo) save(ctx context.Context, existing, next *entities.PlayerCharacter) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to marshal character: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(next.ID), data, 0)
	r.queueMembership(ctx, pipe, existing, next)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to update character: %w", err)
	}
	return nil
}

// queueMembership queues member index changes between two states of a
// character; either side may be nil
func (r *redisRepo) queueMembership(ctx context.Context, pipe redis.Pipeliner, before, after *entities.PlayerCharacter) {
	var id string
	oldParty, newParty, oldGuild, newGuild := 0, 0, 0, 0
	if before != nil {
		id = before.ID
		oldParty, oldGuild = before.PartyID, before.GuildID
	}
	if after != nil {
		id = after.ID
		newParty, newGuild = after.PartyID, after.GuildID
	}

	if oldParty != newParty {
		if oldParty != 0 {
			pipe.LRem(ctx, r.partyMembersKey(oldParty), 0, id)
		}
		if newParty != 0 {
			pipe.RPush(ctx, r.partyMembersKey(newParty), id)
		}
	}
	if oldGuild != newGuild {
		if oldGuild != 0 {
			pipe.SRem(ctx, r.guildMembersKey(oldGuild), id)
		}
		if newGuild != 0 {
			pipe.SAdd(ctx, r.guildMembersKey(newGuild), id)
		}
	}
}
