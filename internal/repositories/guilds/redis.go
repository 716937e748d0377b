package guilds

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories"
)

const nextIDKey = "guild:next_id"

// GuildData is the serialized form of a guild in Redis. Gold is kept in its
// own key so it can be changed atomically.
type GuildData struct {
	ID                 int                  `json:"id"`
	Name               string               `json:"name"`
	LeaderID           string               `json:"leader_id"`
	Level              int                  `json:"level"`
	Exp                int                  `json:"exp"`
	SkillPoint         int                  `json:"skill_point"`
	Message            string               `json:"message"`
	Message2           string               `json:"message2"`
	Score              int                  `json:"score"`
	Options            string               `json:"options"`
	AutoAcceptRequests bool                 `json:"auto_accept_requests"`
	Rank               int                  `json:"rank"`
	MaxMember          int                  `json:"max_member"`
	Roles              []entities.GuildRole `json:"roles"`
	Skills             map[int]int          `json:"skills,omitempty"`
}

type redisRepo struct {
	client redis.UniversalClient
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed guild repository
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
	return fmt.Sprintf("guild:%d", id)
}

func (r *redisRepo) goldKey(id int) string {
	return fmt.Sprintf("guild:%d:gold", id)
}

func (r *redisRepo) nameKey(name string) string {
	return fmt.Sprintf("guild:name:%s", strings.ToLower(name))
}

// Create stores a new guild
func (r *redisRepo) Create(ctx context.Context, guild *entities.Guild) (int, error) {
	if guild == nil {
		return 0, dnderr.InvalidArgument("guild cannot be nil")
	}
	if guild.Name == "" || guild.LeaderID == "" {
		return 0, dnderr.InvalidArgument("guild name and leader ID are required")
	}

	id, err := r.client.Incr(ctx, nextIDKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate guild ID: %w", err)
	}

	claimed, err := r.client.SetNX(ctx, r.nameKey(guild.Name), id, 0).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to claim guild name: %w", err)
	}
	if !claimed {
		return 0, dnderr.AlreadyExistsf("guild name '%s' already exists", guild.Name).
			WithMeta("name", guild.Name)
	}

	data := toGuildData(guild)
	data.ID = int(id)
	encoded, err := json.Marshal(data)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal guild: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(data.ID), encoded, 0)
	pipe.Set(ctx, r.goldKey(data.ID), guild.Gold, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to create guild: %w", err)
	}
	return data.ID, nil
}

// Get retrieves a guild
func (r *redisRepo) Get(ctx context.Context, id int) (*entities.Guild, error) {
	raw, err := r.client.Get(ctx, r.key(id)).Result()
	if repositories.IsRedisNil(err) {
		return nil, repositories.NewRecordNotFoundError("guild", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guild: %w", err)
	}

	var data GuildData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal guild: %w", err)
	}

	gold, err := r.client.Get(ctx, r.goldKey(id)).Int()
	if err != nil && !repositories.IsRedisNil(err) {
		return nil, fmt.Errorf("failed to get guild gold: %w", err)
	}

	guild := fromGuildData(&data)
	guild.Gold = gold
	return guild, nil
}

// Save overwrites every guild field except gold and members
func (r *redisRepo) Save(ctx context.Context, guild *entities.Guild) error {
	if guild == nil {
		return dnderr.InvalidArgument("guild cannot be nil")
	}

	exists, err := r.client.Exists(ctx, r.key(guild.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check guild existence: %w", err)
	}
	if exists == 0 {
		return repositories.NewRecordNotFoundError("guild", guild.ID)
	}

	encoded, err := json.Marshal(toGuildData(guild))
	if err != nil {
		return fmt.Errorf("failed to marshal guild: %w", err)
	}
	if err := r.client.Set(ctx, r.key(guild.ID), encoded, 0).Err(); err != nil {
		return fmt.Errorf("failed to save guild: %w", err)
	}
	return nil
}

// ChangeGold adds delta to the guild's gold
func (r *redisRepo) ChangeGold(ctx context.Context, id, delta int) (int, error) {
	exists, err := r.client.Exists(ctx, r.key(id)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to check guild existence: %w", err)
	}
	if exists == 0 {
		return 0, repositories.NewRecordNotFoundError("guild", id)
	}

	gold, err := r.client.IncrBy(ctx, r.goldKey(id), int64(delta)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to change guild gold: %w", err)
	}
	return int(gold), nil
}

// Delete removes a guild and frees its name
func (r *redisRepo) Delete(ctx context.Context, id int) error {
	guild, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.key(id), r.goldKey(id), r.nameKey(guild.Name))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete guild: %w", err)
	}
	return nil
}

// FindName reports whether a guild name is taken
func (r *redisRepo) FindName(ctx context.Context, name string) (bool, error) {
	n, err := r.client.Exists(ctx, r.nameKey(name)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check guild name: %w", err)
	}
	return n > 0, nil
}

func toGuildData(g *entities.Guild) *GuildData {
	return &GuildData{
		ID:                 g.ID,
		Name:               g.Name,
		LeaderID:           g.LeaderID,
		Level:              g.Level,
		Exp:                g.Exp,
		SkillPoint:         g.SkillPoint,
		Message:            g.Message,
		Message2:           g.Message2,
		Score:              g.Score,
		Options:            g.Options,
		AutoAcceptRequests: g.AutoAcceptRequests,
		Rank:               g.Rank,
		MaxMember:          g.MaxMember,
		Roles:              g.Roles,
		Skills:             g.Skills,
	}
}

func fromGuildData(d *GuildData) *entities.Guild {
	guild := entities.NewGuild(d.ID, d.Name, d.LeaderID, d.Roles)
	guild.Level = d.Level
	guild.Exp = d.Exp
	guild.SkillPoint = d.SkillPoint
	guild.Message = d.Message
	guild.Message2 = d.Message2
	guild.Score = d.Score
	guild.Options = d.Options
	guild.AutoAcceptRequests = d.AutoAcceptRequests
	guild.Rank = d.Rank
	guild.MaxMember = d.MaxMember
	for skill, level := range d.Skills {
		guild.Skills[skill] = level
	}
	return guild
}
