package guilds

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/KirkDiggler/mmo-db-gateway/internal/cache"
	"github.com/KirkDiggler/mmo-db-gateway/internal/clock"
	"github.com/KirkDiggler/mmo-db-gateway/internal/config"
	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
	"github.com/KirkDiggler/mmo-db-gateway/internal/replicator"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories/characters"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories/guildrequests"
	guildRepo "github.com/KirkDiggler/mmo-db-gateway/internal/repositories/guilds"
	characterService "github.com/KirkDiggler/mmo-db-gateway/internal/services/characters"
	"github.com/KirkDiggler/mmo-db-gateway/internal/uniqueness"
)

// Repository is an alias for the guild repository interface
type Repository = guildRepo.Repository

// Service defines the guild service interface
type Service interface {
	// CreateGuild creates a guild with its leader as the only member
	CreateGuild(ctx context.Context, input *CreateGuildInput) (*entities.Guild, error)

	// GetGuild returns a guild with its members
	GetGuild(ctx context.Context, guildID int, forceClearCache bool) (*entities.Guild, error)

	// UpdateGuildLeader hands leadership to a member
	UpdateGuildLeader(ctx context.Context, guildID int, leaderID string) (*entities.Guild, error)

	UpdateGuildMessage(ctx context.Context, guildID int, message string) (*entities.Guild, error)
	UpdateGuildMessage2(ctx context.Context, guildID int, message string) (*entities.Guild, error)
	UpdateGuildScore(ctx context.Context, guildID, score int) (*entities.Guild, error)
	UpdateGuildOptions(ctx context.Context, guildID int, options string) (*entities.Guild, error)
	UpdateGuildAutoAcceptRequests(ctx context.Context, guildID int, autoAccept bool) (*entities.Guild, error)
	UpdateGuildRank(ctx context.Context, guildID, rank int) (*entities.Guild, error)

	// UpdateGuildRole replaces one row of the role table
	UpdateGuildRole(ctx context.Context, guildID, role int, data entities.GuildRole) (*entities.Guild, error)

	// UpdateGuildMemberRole assigns a member a role index
	UpdateGuildMemberRole(ctx context.Context, guildID int, characterID string, role int) (*entities.Guild, error)

	// DeleteGuild disbands a guild and frees its name
	DeleteGuild(ctx context.Context, guildID int) error

	// UpdateCharacterGuild adds a character to a guild with a role
	UpdateCharacterGuild(ctx context.Context, characterID string, guildID, role int) (*entities.Guild, error)

	// ClearCharacterGuild removes a character from its guild. A character
	// that is unknown or not in a guild is left as is.
	ClearCharacterGuild(ctx context.Context, characterID string) error

	// FindGuildName reports whether a guild name is taken
	FindGuildName(ctx context.Context, name string) (bool, error)

	// IncreaseGuildExp banks exp and applies any level ups
	IncreaseGuildExp(ctx context.Context, guildID, exp int) (*entities.Guild, error)

	// AddGuildSkill spends skill points on one skill level
	AddGuildSkill(ctx context.Context, guildID, skillID int) (*entities.Guild, error)

	GetGuildGold(ctx context.Context, guildID int) (int, error)

	// ChangeGuildGold adds delta to the guild's gold and returns the balance
	ChangeGuildGold(ctx context.Context, guildID, delta int) (int, error)

	// UpdateGuildMemberCount sets the member ceiling, 0 for none
	UpdateGuildMemberCount(ctx context.Context, guildID, maxMember int) (*entities.Guild, error)

	// CreateGuildRequest files a character's request to join a guild
	CreateGuildRequest(ctx context.Context, guildID int, requesterID string) error

	DeleteGuildRequest(ctx context.Context, guildID int, requesterID string) error

	// GetGuildRequests returns the requesters of a guild, oldest first
	GetGuildRequests(ctx context.Context, guildID, skip, limit int) ([]entities.SocialCharacter, error)

	// GetGuildRequestNotification counts a guild's pending requests
	GetGuildRequestNotification(ctx context.Context, guildID int) (int, error)
}

// CreateGuildInput carries the name and leader of a new guild
type CreateGuildInput struct {
	Name     string
	LeaderID string
}

type service struct {
	repository       Repository
	characterRepo    characters.Repository
	requests         guildrequests.Repository
	characterService characterService.Service
	cache            *cache.Cache
	guard            *uniqueness.Guard
	replicator       *replicator.Replicator
	settings         *config.SocialSettings
	timeProvider     clock.TimeProvider
	logger           hclog.Logger
	locks            *cache.KeyLock[int]
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository          Repository               // Required
	CharacterRepository characters.Repository    // Required
	RequestRepository   guildrequests.Repository // Required
	CharacterService    characterService.Service // Required
	Cache               *cache.Cache             // Required
	Guard               *uniqueness.Guard        // Required
	Replicator          *replicator.Replicator   // Required
	Settings            *config.SocialSettings   // Optional, defaults apply
	TimeProvider        clock.TimeProvider       // Optional, defaults to the system clock
	Logger              hclog.Logger
}

// NewService creates a new guild service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.CharacterRepository == nil {
		panic("character repository is required")
	}
	if cfg.RequestRepository == nil {
		panic("request repository is required")
	}
	if cfg.CharacterService == nil {
		panic("character service is required")
	}
	if cfg.Cache == nil {
		panic("cache is required")
	}
	if cfg.Guard == nil {
		panic("uniqueness guard is required")
	}
	if cfg.Replicator == nil {
		panic("replicator is required")
	}

	svc := &service{
		repository:       cfg.Repository,
		characterRepo:    cfg.CharacterRepository,
		requests:         cfg.RequestRepository,
		characterService: cfg.CharacterService,
		cache:            cfg.Cache,
		guard:            cfg.Guard,
		replicator:       cfg.Replicator,
		settings:         cfg.Settings,
		timeProvider:     cfg.TimeProvider,
		logger:           cfg.Logger,
		locks:            cache.NewKeyLock[int](),
	}
	if svc.settings == nil {
		svc.settings = config.DefaultSocialSettings()
	}
	if svc.timeProvider == nil {
		svc.timeProvider = clock.NewRealTimeProvider()
	}
	if svc.logger == nil {
		svc.logger = hclog.NewNullLogger()
	}
	return svc
}

// CreateGuild implements Service
func (s *service) CreateGuild(ctx context.Context, input *CreateGuildInput) (*entities.Guild, error) {
	if input == nil || strings.TrimSpace(input.Name) == "" || input.LeaderID == "" {
		return nil, dnderr.InvalidArgument("guild name and leader ID are required")
	}

	release, err := s.guard.BeginCreate(ctx, uniqueness.KindGuildName, input.Name)
	if err != nil {
		return nil, err
	}
	defer release()

	leader, err := s.characterService.GetSocialCharacter(ctx, input.LeaderID)
	if err != nil {
		return nil, err
	}

	guild := entities.NewGuild(0, input.Name, input.LeaderID, s.settings.Roles())
	guild.MaxMember = s.settings.DefaultMaxGuildMembers
	guildID, err := s.repository.Create(ctx, guild)
	if err != nil {
		if dnderr.Is(err, dnderr.CodeAlreadyExists) {
			s.guard.Record(ctx, uniqueness.KindGuildName, input.Name)
			return nil, dnderr.WrapWithCode(err, dnderr.CodeConflict, "guild name is taken").
				WithReason(dnderr.ReasonNameInUse)
		}
		return nil, dnderr.WrapStore(err, "failed to create guild")
	}
	guild.ID = guildID

	if err := s.characterRepo.UpdateGuild(ctx, input.LeaderID, guildID, entities.LeaderRole); err != nil {
		return nil, dnderr.WrapStore(err, fmt.Sprintf("failed to add leader to guild %d", guildID))
	}
	if err := guild.AddMember(leader, entities.LeaderRole); err != nil {
		return nil, err
	}

	s.guard.Record(ctx, uniqueness.KindGuildName, guild.Name)
	if leader.GuildID != 0 {
		s.cache.Guilds.Invalidate(ctx, leader.GuildID)
	}
	s.replicator.SyncGuild(ctx, guild)
	s.logger.Debug("guild created", "guild_id", guildID, "name", guild.Name)
	return guild, nil
}

// GetGuild implements Service
func (s *service) GetGuild(ctx context.Context, guildID int, forceClearCache bool) (*entities.Guild, error) {
	if forceClearCache {
		s.cache.Guilds.Invalidate(ctx, guildID)
	}
	return s.getGuild(ctx, guildID)
}

// getGuild reads through the cache. Members come from the characters whose
// guild id points at the guild, and a read from the store reseeds every
// member's projections.
func (s *service) getGuild(ctx context.Context, guildID int) (*entities.Guild, error) {
	if guildID <= 0 {
		return nil, dnderr.InvalidArgumentf("invalid guild ID %d", guildID)
	}

	fromStore := false
	result, err := cache.GetOrLoad(ctx, s.cache.Guilds, guildID, func(ctx context.Context) (cache.Result[*entities.Guild], error) {
		guild, err := s.repository.Get(ctx, guildID)
		if dnderr.IsNotFound(err) {
			return cache.Missing[*entities.Guild](), nil
		}
		if err != nil {
			return cache.Missing[*entities.Guild](), err
		}
		members, err := s.characterRepo.ListByGuild(ctx, guildID)
		if err != nil {
			return cache.Missing[*entities.Guild](), err
		}
		for _, m := range members {
			guild.Members[m.ID] = entities.NewSocialCharacter(m)
		}
		fromStore = true
		return cache.Found(guild), nil
	})
	if err != nil {
		return nil, dnderr.WrapStore(err, fmt.Sprintf("failed to get guild %d", guildID))
	}

	guild, ok := result.Get()
	if !ok {
		return nil, dnderr.NotFoundf("guild %d not found", guildID)
	}
	if fromStore {
		s.replicator.SyncGuild(ctx, guild)
	}
	return guild, nil
}

// update loads a guild, applies fn and saves the result store first.
// Mutations of one guild run one at a time.
func (s *service) update(ctx context.Context, guildID int, fn func(*entities.Guild) error) (*entities.Guild, error) {
	defer s.locks.Lock(guildID)()

	guild, err := s.getGuild(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if err := fn(guild); err != nil {
		return nil, err
	}
	if err := s.repository.Save(ctx, guild); err != nil {
		return nil, dnderr.WrapStore(err, fmt.Sprintf("failed to save guild %d", guildID))
	}
	s.cache.Guilds.Store(ctx, guildID, guild)
	return guild, nil
}

// UpdateGuildLeader implements Service
func (s *service) UpdateGuildLeader(ctx context.Context, guildID int, leaderID string) (*entities.Guild, error) {
	defer s.locks.Lock(guildID)()

	guild, err := s.getGuild(ctx, guildID)
	if err != nil {
		return nil, err
	}

	previousID := guild.LeaderID
	if err := guild.SetLeader(leaderID); err != nil {
		return nil, err
	}
	if err := s.repository.Save(ctx, guild); err != nil {
		return nil, dnderr.WrapStore(err, fmt.Sprintf("failed to save guild %d", guildID))
	}

	changed := []string{leaderID}
	if err := s.characterRepo.UpdateGuild(ctx, leaderID, guildID, entities.LeaderRole); err != nil {
		return nil, dnderr.WrapStore(err, fmt.Sprintf("failed to promote %s", leaderID))
	}
	if previous, ok := guild.Member(previousID); ok && previousID != leaderID {
		if err := s.characterRepo.UpdateGuild(ctx, previousID, guildID, previous.GuildRole); err != nil {
			return nil, dnderr.WrapStore(err, fmt.Sprintf("failed to demote %s", previousID))
		}
		changed = append(changed, previousID)
	}

	s.replicator.SyncGuild(ctx, guild, changed...)
	return guild, nil
}

// UpdateGuildMessage implements Service
func (s *service) UpdateGuildMessage(ctx context.Context, guildID int, message string) (*entities.Guild, error) {
	return s.update(ctx, guildID, func(g *entities.Guild) error {
		g.Message = message
		return nil
	})
}

// UpdateGuildMessage2 implements Service
func (s *service) UpdateGuildMessage2(ctx context.Context, guildID int, message string) (*entities.Guild, error) {
	return s.update(ctx, guildID, func(g *entities.Guild) error {
		g.Message2 = message
		return nil
	})
}

// UpdateGuildScore implements Service
func (s *service) UpdateGuildScore(ctx context.Context, guildID, score int) (*entities.Guild, error) {
	return s.update(ctx, guildID, func(g *entities.Guild) error {
		g.Score = score
		return nil
	})
}

// UpdateGuildOptions implements Service
func (s *service) UpdateGuildOptions(ctx context.Context, guildID int, options string) (*entities.Guild, error) {
	return s.update(ctx, guildID, func(g *entities.Guild) error {
		g.Options = options
		return nil
	})
}

// UpdateGuildAutoAcceptRequests implements Service
func (s *service) UpdateGuildAutoAcceptRequests(ctx context.Context, guildID int, autoAccept bool) (*entities.Guild, error) {
	return s.update(ctx, guildID, func(g *entities.Guild) error {
		g.AutoAcceptRequests = autoAccept
		return nil
	})
}

// UpdateGuildRank implements Service
func (s *service) UpdateGuildRank(ctx context.Context, guildID, rank int) (*entities.Guild, error) {
	return s.update(ctx, guildID, func(g *entities.Guild) error {
		g.Rank = rank
		return nil
	})
}

// UpdateGuildRole implements Service
func (s *service) UpdateGuildRole(ctx context.Context, guildID, role int, data entities.GuildRole) (*entities.Guild, error) {
	return s.update(ctx, guildID, func(g *entities.Guild) error {
		return g.SetRole(role, data)
	})
}

// UpdateGuildMemberRole implements Service
func (s *service) UpdateGuildMemberRole(ctx context.Context, guildID int, characterID string, role int) (*entities.Guild, error) {
	defer s.locks.Lock(guildID)()

	guild, err := s.getGuild(ctx, guildID)
	if err != nil {
		return nil, err
	}
	if err := guild.SetMemberRole(characterID, role); err != nil {
		return nil, err
	}
	if err := s.characterRepo.UpdateGuild(ctx, characterID, guildID, role); err != nil {
		return nil, dnderr.WrapStore(err, fmt.Sprintf("failed to set role of %s", characterID))
	}

	s.replicator.SyncGuild(ctx, guild, characterID)
	return guild, nil
}

// DeleteGuild implements Service
func (s *service) DeleteGuild(ctx context.Context, guildID int) error {
	defer s.locks.Lock(guildID)()

	guild, err := s.getGuild(ctx, guildID)
	if err != nil {
		return err
	}
	if err := s.repository.Delete(ctx, guildID); err != nil {
		return dnderr.WrapStore(err, fmt.Sprintf("failed to delete guild %d", guildID))
	}
	if err := s.characterRepo.ClearGuild(ctx, guildID); err != nil {
		return dnderr.WrapStore(err, fmt.Sprintf("failed to clear members of guild %d", guildID))
	}
	if err := s.requests.DeleteAll(ctx, guildID); err != nil {
		s.logger.Warn("failed to drop join requests", "guild_id", guildID, "error", err)
	}

	s.guard.Forget(ctx, uniqueness.KindGuildName, guild.Name)
	s.replicator.ForgetGuild(ctx, guild)
	s.logger.Debug("guild deleted", "guild_id", guildID, "members", len(guild.Members))
	return nil
}

// UpdateCharacterGuild implements Service
func (s *service) UpdateCharacterGuild(ctx context.Context, characterID string, guildID, role int) (*entities.Guild, error) {
	if characterID == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}
	defer s.locks.Lock(guildID)()

	guild, err := s.getGuild(ctx, guildID)
	if err != nil {
		return nil, err
	}
	member, err := s.characterService.GetSocialCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}
	previousGuild := member.GuildID

	if err := guild.AddMember(member, role); err != nil {
		return nil, err
	}
	if err := s.characterRepo.UpdateGuild(ctx, characterID, guildID, role); err != nil {
		return nil, dnderr.WrapStore(err, fmt.Sprintf("failed to add %s to guild %d", characterID, guildID))
	}

	if previousGuild != 0 && previousGuild != guildID {
		s.cache.Guilds.Invalidate(ctx, previousGuild)
	}
	s.replicator.SyncGuild(ctx, guild, characterID)
	return guild, nil
}

// ClearCharacterGuild implements Service
func (s *service) ClearCharacterGuild(ctx context.Context, characterID string) error {
	if characterID == "" {
		return dnderr.InvalidArgument("character ID is required")
	}
	member, err := s.characterService.GetSocialCharacter(ctx, characterID)
	if dnderr.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if member.GuildID == 0 {
		return nil
	}
	defer s.locks.Lock(member.GuildID)()

	if err := s.characterRepo.UpdateGuild(ctx, characterID, 0, 0); err != nil {
		return dnderr.WrapStore(err, fmt.Sprintf("failed to remove %s from guild %d", characterID, member.GuildID))
	}

	guild, err := s.getGuild(ctx, member.GuildID)
	switch {
	case dnderr.IsNotFound(err):
		s.replicator.DetachFromGuild(ctx, nil, characterID)
	case err != nil:
		s.cache.Guilds.Invalidate(ctx, member.GuildID)
		s.replicator.DetachFromGuild(ctx, nil, characterID)
	default:
		guild.RemoveMember(characterID)
		s.replicator.DetachFromGuild(ctx, guild, characterID)
	}
	return nil
}

// FindGuildName implements Service
func (s *service) FindGuildName(ctx context.Context, name string) (bool, error) {
	if strings.TrimSpace(name) == "" {
		return false, dnderr.InvalidArgument("name is required")
	}
	return s.guard.Exists(ctx, uniqueness.KindGuildName, name)
}

// IncreaseGuildExp implements Service
func (s *service) IncreaseGuildExp(ctx context.Context, guildID, exp int) (*entities.Guild, error) {
	if exp < 0 {
		return nil, dnderr.InvalidArgumentf("exp cannot be negative, got %d", exp)
	}
	return s.update(ctx, guildID, func(g *entities.Guild) error {
		if gained := g.IncreaseExp(s.settings.GuildExpTree, exp); gained > 0 {
			s.logger.Debug("guild leveled up", "guild_id", g.ID, "level", g.Level, "gained", gained)
		}
		return nil
	})
}

// AddGuildSkill implements Service
func (s *service) AddGuildSkill(ctx context.Context, guildID, skillID int) (*entities.Guild, error) {
	return s.update(ctx, guildID, func(g *entities.Guild) error {
		return g.AddSkillLevel(skillID, s.settings)
	})
}

// GetGuildGold implements Service
func (s *service) GetGuildGold(ctx context.Context, guildID int) (int, error) {
	guild, err := s.getGuild(ctx, guildID)
	if err != nil {
		return 0, err
	}
	return guild.Gold, nil
}

// ChangeGuildGold implements Service
func (s *service) ChangeGuildGold(ctx context.Context, guildID, delta int) (int, error) {
	defer s.locks.Lock(guildID)()

	gold, err := s.repository.ChangeGold(ctx, guildID, delta)
	if err != nil {
		return 0, dnderr.WrapStore(err, fmt.Sprintf("failed to change gold of guild %d", guildID))
	}

	cached, err := s.cache.Guilds.Get(ctx, guildID)
	if err != nil {
		s.logger.Warn("cache read failed, dropping guild entry", "guild_id", guildID, "error", err)
		s.cache.Guilds.Invalidate(ctx, guildID)
		return gold, nil
	}
	if guild, ok := cached.Get(); ok {
		guild.Gold = gold
		s.cache.Guilds.Store(ctx, guildID, guild)
	}
	return gold, nil
}

// UpdateGuildMemberCount implements Service
func (s *service) UpdateGuildMemberCount(ctx context.Context, guildID, maxMember int) (*entities.Guild, error) {
	if maxMember < 0 {
		return nil, dnderr.InvalidArgumentf("member count cannot be negative, got %d", maxMember)
	}
	return s.update(ctx, guildID, func(g *entities.Guild) error {
		g.MaxMember = maxMember
		return nil
	})
}

// CreateGuildRequest implements Service
func (s *service) CreateGuildRequest(ctx context.Context, guildID int, requesterID string) error {
	if requesterID == "" {
		return dnderr.InvalidArgument("requester ID is required")
	}
	if _, err := s.getGuild(ctx, guildID); err != nil {
		return err
	}
	requester, err := s.characterService.GetSocialCharacter(ctx, requesterID)
	if err != nil {
		return err
	}
	if requester.GuildID == guildID {
		return dnderr.Conflictf("character %s is already in guild %d", requesterID, guildID)
	}

	if err := s.requests.Create(ctx, guildID, requesterID, s.timeProvider.Now().Unix()); err != nil {
		return dnderr.WrapStore(err, fmt.Sprintf("failed to save request of %s to guild %d", requesterID, guildID))
	}
	return nil
}

// DeleteGuildRequest implements Service
func (s *service) DeleteGuildRequest(ctx context.Context, guildID int, requesterID string) error {
	if guildID <= 0 || requesterID == "" {
		return dnderr.InvalidArgument("guild ID and requester ID are required")
	}
	if err := s.requests.Delete(ctx, guildID, requesterID); err != nil {
		return dnderr.WrapStore(err, fmt.Sprintf("failed to delete request of %s to guild %d", requesterID, guildID))
	}
	return nil
}

// GetGuildRequests implements Service. Requesters deleted since asking are
// left out.
func (s *service) GetGuildRequests(ctx context.Context, guildID, skip, limit int) ([]entities.SocialCharacter, error) {
	if guildID <= 0 {
		return nil, dnderr.InvalidArgumentf("invalid guild ID %d", guildID)
	}
	ids, err := s.requests.List(ctx, guildID, skip, limit)
	if err != nil {
		return nil, dnderr.WrapStore(err, fmt.Sprintf("failed to list requests to guild %d", guildID))
	}

	list := make([]entities.SocialCharacter, 0, len(ids))
	for _, id := range ids {
		requester, err := s.characterService.GetSocialCharacter(ctx, id)
		if dnderr.IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		list = append(list, requester)
	}
	return list, nil
}

// GetGuildRequestNotification implements Service
func (s *service) GetGuildRequestNotification(ctx context.Context, guildID int) (int, error) {
	if guildID <= 0 {
		return 0, dnderr.InvalidArgumentf("invalid guild ID %d", guildID)
	}
	count, err := s.requests.Count(ctx, guildID)
	if err != nil {
		return 0, dnderr.WrapStore(err, fmt.Sprintf("failed to count requests to guild %d", guildID))
	}
	return count, nil
}
