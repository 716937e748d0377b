package friends

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
	friendRepo "github.com/KirkDiggler/mmo-db-gateway/internal/repositories/friends"
	characterService "github.com/KirkDiggler/mmo-db-gateway/internal/services/characters"
)

// Repository is an alias for the friend repository interface
type Repository = friendRepo.Repository

// Service defines the friend service interface. Pairs always go to the
// store; the characters they name are read through the character cache.
type Service interface {
	// CreateFriend records that characterID1 holds characterID2 in state,
	// replacing any earlier state of the pair
	CreateFriend(ctx context.Context, characterID1, characterID2 string, state int) error

	// DeleteFriend drops the pair characterID1 -> characterID2
	DeleteFriend(ctx context.Context, characterID1, characterID2 string) error

	// GetFriends returns the social copies of the characters on the far side
	// of a character's pairs
	GetFriends(ctx context.Context, input *GetFriendsInput) ([]entities.SocialCharacter, error)

	// GetFriendRequestNotification counts the pending requests sent to a
	// character
	GetFriendRequestNotification(ctx context.Context, characterID string) (int, error)
}

// GetFriendsInput selects one page of a character's pairs
type GetFriendsInput struct {
	CharacterID string
	ReadByID2   bool // read the pairs naming CharacterID as the second character
	State       int
	Skip        int
	Limit       int // 0 for no limit
}

type service struct {
	repository       Repository
	characterService characterService.Service
	logger           hclog.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository       Repository               // Required
	CharacterService characterService.Service // Required
	Logger           hclog.Logger
}

// NewService creates a new friend service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.CharacterService == nil {
		panic("character service is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &service{
		repository:       cfg.Repository,
		characterService: cfg.CharacterService,
		logger:           logger,
	}
}

// CreateFriend implements Service
func (s *service) CreateFriend(ctx context.Context, characterID1, characterID2 string, state int) error {
	if err := validatePair(characterID1, characterID2); err != nil {
		return err
	}
	if err := s.repository.Upsert(ctx, characterID1, characterID2, state); err != nil {
		return dnderr.WrapStore(err, fmt.Sprintf("failed to save friend %s of %s", characterID2, characterID1))
	}
	s.logger.Debug("friend saved", "character_id", characterID1, "friend_id", characterID2, "state", state)
	return nil
}

// DeleteFriend implements Service
func (s *service) DeleteFriend(ctx context.Context, characterID1, characterID2 string) error {
	if err := validatePair(characterID1, characterID2); err != nil {
		return err
	}
	if err := s.repository.Delete(ctx, characterID1, characterID2); err != nil {
		return dnderr.WrapStore(err, fmt.Sprintf("failed to delete friend %s of %s", characterID2, characterID1))
	}
	return nil
}

// GetFriends implements Service. Characters deleted since the pair was made
// are left out.
func (s *service) GetFriends(ctx context.Context, input *GetFriendsInput) ([]entities.SocialCharacter, error) {
	if input == nil || input.CharacterID == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}

	ids, err := s.repository.List(ctx, input.CharacterID, input.ReadByID2, input.State, input.Skip, input.Limit)
	if err != nil {
		return nil, dnderr.WrapStore(err, fmt.Sprintf("failed to list friends of %s", input.CharacterID))
	}

	list := make([]entities.SocialCharacter, 0, len(ids))
	for _, id := range ids {
		friend, err := s.characterService.GetSocialCharacter(ctx, id)
		if dnderr.IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		list = append(list, friend)
	}
	return list, nil
}

// GetFriendRequestNotification implements Service
func (s *service) GetFriendRequestNotification(ctx context.Context, characterID string) (int, error) {
	if characterID == "" {
		return 0, dnderr.InvalidArgument("character ID is required")
	}
	count, err := s.repository.CountByID2(ctx, characterID, entities.FriendStateRequest)
	if err != nil {
		return 0, dnderr.WrapStore(err, fmt.Sprintf("failed to count friend requests of %s", characterID))
	}
	return count, nil
}

func validatePair(characterID1, characterID2 string) error {
	if characterID1 == "" || characterID2 == "" {
		return dnderr.InvalidArgument("both character IDs are required")
	}
	if characterID1 == characterID2 {
		return dnderr.InvalidArgumentf("character %s cannot befriend itself", characterID1)
	}
	return nil
}
