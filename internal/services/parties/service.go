package parties

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/KirkDiggler/mmo-db-gateway/internal/cache"
	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
	"github.com/KirkDiggler/mmo-db-gateway/internal/replicator"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories/characters"
	partyRepo "github.com/KirkDiggler/mmo-db-gateway/internal/repositories/parties"
	characterService "github.com/KirkDiggler/mmo-db-gateway/internal/services/characters"
)

// Repository is an alias for the party repository interface
type Repository = partyRepo.Repository

// Service defines the party service interface
type Service interface {
	// CreateParty creates a party led by, and containing, its leader
	CreateParty(ctx context.Context, input *CreatePartyInput) (*entities.Party, error)

	// GetParty returns a party with its members
	GetParty(ctx context.Context, partyID int, forceClearCache bool) (*entities.Party, error)

	// UpdateParty replaces the share flags
	UpdateParty(ctx context.Context, partyID int, shareExp, shareItem bool) (*entities.Party, error)

	// UpdatePartyLeader hands leadership to another character
	UpdatePartyLeader(ctx context.Context, partyID int, leaderID string) (*entities.Party, error)

	// DeleteParty disbands a party
	DeleteParty(ctx context.Context, partyID int) error

	// UpdateCharacterParty adds a character to a party
	UpdateCharacterParty(ctx context.Context, characterID string, partyID int) (*entities.Party, error)

	// ClearCharacterParty removes a character from its party. A character
	// that is unknown or not in a party is left as is.
	ClearCharacterParty(ctx context.Context, characterID string) error
}

// CreatePartyInput carries the settings of a new party
type CreatePartyInput struct {
	ShareExp  bool
	ShareItem bool
	LeaderID  string
}

type service struct {
	repository       Repository
	characterRepo    characters.Repository
	characterService characterService.Service
	cache            *cache.Cache
	replicator       *replicator.Replicator
	logger           hclog.Logger
	locks            *cache.KeyLock[int]
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository          Repository               // Required
	CharacterRepository characters.Repository    // Required
	CharacterService    characterService.Service // Required
	Cache               *cache.Cache             // Required
	Replicator          *replicator.Replicator   // Required
	Logger              hclog.Logger
}

// NewService creates a new party service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.CharacterRepository == nil {
		panic("character repository is required")
	}
	if cfg.CharacterService == nil {
		panic("character service is required")
	}
	if cfg.Cache == nil {
		panic("cache is required")
	}
	if cfg.Replicator == nil {
		panic("replicator is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &service{
		repository:       cfg.Repository,
		characterRepo:    cfg.CharacterRepository,
		characterService: cfg.CharacterService,
		cache:            cfg.Cache,
		replicator:       cfg.Replicator,
		logger:           logger,
		locks:            cache.NewKeyLock[int](),
	}
}

// CreateParty implements Service
func (s *service) CreateParty(ctx context.Context, input *CreatePartyInput) (*entities.Party, error) {
	if input == nil || input.LeaderID == "" {
		return nil, dnderr.InvalidArgument("leader ID is required")
	}

	leader, err := s.characterService.GetSocialCharacter(ctx, input.LeaderID)
	if err != nil {
		return nil, err
	}

	partyID, err := s.repository.Create(ctx, input.ShareExp, input.ShareItem, input.LeaderID)
	if err != nil {
		return nil, dnderr.WrapStore(err, "failed to create party")
	}
	if err := s.characterRepo.UpdateParty(ctx, input.LeaderID, partyID); err != nil {
		return nil, dnderr.WrapStore(err, fmt.Sprintf("failed to add leader to party %d", partyID))
	}

	party := entities.NewParty(partyID, input.ShareExp, input.ShareItem, input.LeaderID)
	if leader.PartyID != 0 {
		s.cache.Parties.Invalidate(ctx, leader.PartyID)
	}
	party.AddMember(leader)
	s.replicator.SyncParty(ctx, party)
	return party, nil
}

// GetParty implements Service
func (s *service) GetParty(ctx context.Context, partyID int, forceClearCache bool) (*entities.Party, error) {
	if forceClearCache {
		s.cache.Parties.Invalidate(ctx, partyID)
	}
	return s.getParty(ctx, partyID)
}

// getParty reads through the cache. Members come from the characters
// whose party id points at the party, and a read from the store reseeds
// every member's projections.
func (s *service) getParty(ctx context.Context, partyID int) (*entities.Party, error) {
	if partyID <= 0 {
		return nil, dnderr.InvalidArgumentf("invalid party ID %d", partyID)
	}

	fromStore := false
	result, err := cache.GetOrLoad(ctx, s.cache.Parties, partyID, func(ctx context.Context) (cache.Result[*entities.Party], error) {
		party, err := s.repository.Get(ctx, partyID)
		if dnderr.IsNotFound(err) {
			return cache.Missing[*entities.Party](), nil
		}
		if err != nil {
			return cache.Missing[*entities.Party](), err
		}
		members, err := s.characterRepo.ListByParty(ctx, partyID)
		if err != nil {
			return cache.Missing[*entities.Party](), err
		}
		for _, m := range members {
			party.AddMember(entities.NewSocialCharacter(m))
		}
		fromStore = true
		return cache.Found(party), nil
	})
	if err != nil {
		return nil, dnderr.WrapStore(err, fmt.Sprintf("failed to get party %d", partyID))
	}

	party, ok := result.Get()
	if !ok {
		return nil, dnderr.NotFoundf("party %d not found", partyID)
	}
	if fromStore {
		s.replicator.SyncParty(ctx, party)
	}
	return party, nil
}

// UpdateParty implements Service
func (s *service) UpdateParty(ctx context.Context, partyID int, shareExp, shareItem bool) (*entities.Party, error) {
	defer s.locks.Lock(partyID)()

	party, err := s.getParty(ctx, partyID)
	if err != nil {
		return nil, err
	}
	if err := s.repository.UpdateSetting(ctx, partyID, shareExp, shareItem); err != nil {
		return nil, dnderr.WrapStore(err, fmt.Sprintf("failed to update party %d", partyID))
	}

	party.Setting(shareExp, shareItem)
	s.cache.Parties.Store(ctx, partyID, party)
	return party, nil
}

// UpdatePartyLeader implements Service
func (s *service) UpdatePartyLeader(ctx context.Context, partyID int, leaderID string) (*entities.Party, error) {
	if leaderID == "" {
		return nil, dnderr.InvalidArgument("leader ID is required")
	}
	defer s.locks.Lock(partyID)()

	party, err := s.getParty(ctx, partyID)
	if err != nil {
		return nil, err
	}
	if err := s.repository.UpdateLeader(ctx, partyID, leaderID); err != nil {
		return nil, dnderr.WrapStore(err, fmt.Sprintf("failed to update leader of party %d", partyID))
	}

	party.SetLeader(leaderID)
	s.cache.Parties.Store(ctx, partyID, party)
	return party, nil
}

// DeleteParty implements Service
func (s *service) DeleteParty(ctx context.Context, partyID int) error {
	defer s.locks.Lock(partyID)()

	party, err := s.getParty(ctx, partyID)
	if err != nil {
		return err
	}
	if err := s.repository.Delete(ctx, partyID); err != nil {
		return dnderr.WrapStore(err, fmt.Sprintf("failed to delete party %d", partyID))
	}
	if err := s.characterRepo.ClearParty(ctx, partyID); err != nil {
		return dnderr.WrapStore(err, fmt.Sprintf("failed to clear members of party %d", partyID))
	}

	s.replicator.ForgetParty(ctx, party)
	s.logger.Debug("party deleted", "party_id", partyID, "members", len(party.Members))
	return nil
}

// UpdateCharacterParty implements Service
func (s *service) UpdateCharacterParty(ctx context.Context, characterID string, partyID int) (*entities.Party, error) {
	if characterID == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}
	defer s.locks.Lock(partyID)()

	party, err := s.getParty(ctx, partyID)
	if err != nil {
		return nil, err
	}
	member, err := s.characterService.GetSocialCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}

	if err := s.characterRepo.UpdateParty(ctx, characterID, partyID); err != nil {
		return nil, dnderr.WrapStore(err, fmt.Sprintf("failed to add %s to party %d", characterID, partyID))
	}

	if member.PartyID != 0 && member.PartyID != partyID {
		s.cache.Parties.Invalidate(ctx, member.PartyID)
	}
	party.AddMember(member)
	s.replicator.SyncParty(ctx, party, characterID)
	return party, nil
}

// ClearCharacterParty implements Service
func (s *service) ClearCharacterParty(ctx context.Context, characterID string) error {
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
	if member.PartyID == 0 {
		return nil
	}
	defer s.locks.Lock(member.PartyID)()

	if err := s.characterRepo.UpdateParty(ctx, characterID, 0); err != nil {
		return dnderr.WrapStore(err, fmt.Sprintf("failed to remove %s from party %d", characterID, member.PartyID))
	}

	party, err := s.getParty(ctx, member.PartyID)
	switch {
	case dnderr.IsNotFound(err):
		s.replicator.DetachFromParty(ctx, nil, characterID)
	case err != nil:
		s.cache.Parties.Invalidate(ctx, member.PartyID)
		s.replicator.DetachFromParty(ctx, nil, characterID)
	default:
		party.RemoveMember(characterID)
		s.replicator.DetachFromParty(ctx, party, characterID)
	}
	return nil
}
