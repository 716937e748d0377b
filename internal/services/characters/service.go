package characters

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/mmo-db-gateway/internal/cache"
	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
	"github.com/KirkDiggler/mmo-db-gateway/internal/replicator"
	characterRepo "github.com/KirkDiggler/mmo-db-gateway/internal/repositories/characters"
	storageService "github.com/KirkDiggler/mmo-db-gateway/internal/services/storages"
	"github.com/KirkDiggler/mmo-db-gateway/internal/uniqueness"
)

// Repository is an alias for the character repository interface
type Repository = characterRepo.Repository

// maxConcurrentLoads bounds the cache lookups of one ListCharacters call
const maxConcurrentLoads = 8

// Service defines the character service interface
type Service interface {
	// CreateCharacter stores a new character for a user
	CreateCharacter(ctx context.Context, userID string, character *entities.PlayerCharacter) (*entities.PlayerCharacter, error)

	// GetCharacter returns a character. A non-empty userID must own it.
	GetCharacter(ctx context.Context, input *GetCharacterInput) (*entities.PlayerCharacter, error)

	// ListCharacters returns a user's characters in creation order
	ListCharacters(ctx context.Context, userID string) ([]*entities.PlayerCharacter, error)

	// UpdateCharacter saves character progress and optionally the owner's
	// player storage
	UpdateCharacter(ctx context.Context, input *UpdateCharacterInput) (*entities.PlayerCharacter, error)

	// DeleteCharacter removes a character owned by userID
	DeleteCharacter(ctx context.Context, userID, characterID string) error

	// GetSocialCharacter returns the social projection of a character
	GetSocialCharacter(ctx context.Context, characterID string) (entities.SocialCharacter, error)

	// FindCharacterName reports whether a character name is taken
	FindCharacterName(ctx context.Context, name string) (bool, error)

	// GetIDByCharacterName resolves a character name to its ID
	GetIDByCharacterName(ctx context.Context, name string) (string, error)

	// GetUserIDByCharacterName resolves a character name to its owner
	GetUserIDByCharacterName(ctx context.Context, name string) (string, error)

	// SetCharacterUnmuteTimeByName sets when a character's chat mute ends
	SetCharacterUnmuteTimeByName(ctx context.Context, name string, unmuteTime int64) error
}

// GetCharacterInput selects a character
type GetCharacterInput struct {
	UserID          string // optional owner check
	CharacterID     string
	ForceClearCache bool // drop the cached copy and read the store
}

// UpdateCharacterInput carries a character save from a game server
type UpdateCharacterInput struct {
	Character *entities.PlayerCharacter

	// StorageItems replaces the owner's player storage when not nil
	StorageItems []entities.CharacterItem

	// DeleteStorageReservation releases what the character holds reserved
	DeleteStorageReservation bool
}

type service struct {
	repository Repository
	storages   storageService.Service
	cache      *cache.Cache
	guard      *uniqueness.Guard
	replicator *replicator.Replicator
	logger     hclog.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository     Repository             // Required
	StorageService storageService.Service // Required
	Cache          *cache.Cache           // Required
	Guard          *uniqueness.Guard      // Required
	Replicator     *replicator.Replicator // Required
	Logger         hclog.Logger
}

// NewService creates a new character service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.StorageService == nil {
		panic("storage service is required")
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

	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &service{
		repository: cfg.Repository,
		storages:   cfg.StorageService,
		cache:      cfg.Cache,
		guard:      cfg.Guard,
		replicator: cfg.Replicator,
		logger:     logger,
	}
}

// CreateCharacter implements Service
func (s *service) CreateCharacter(ctx context.Context, userID string, character *entities.PlayerCharacter) (*entities.PlayerCharacter, error) {
	if character == nil {
		return nil, dnderr.InvalidArgument("character cannot be nil")
	}
	if userID == "" || character.ID == "" || character.Name == "" {
		return nil, dnderr.InvalidArgument("user ID, character ID and name are required")
	}

	release, err := s.guard.BeginCreate(ctx, uniqueness.KindCharacterName, character.Name)
	if err != nil {
		return nil, err
	}
	defer release()

	created := character.Clone()
	created.UserID = userID
	created.PartyID, created.GuildID, created.GuildRole = 0, 0, 0
	if err := s.repository.Create(ctx, created); err != nil {
		if dnderr.Is(err, dnderr.CodeAlreadyExists) {
			return nil, dnderr.WrapWithCode(err, dnderr.CodeConflict, "character name is taken").
				WithReason(dnderr.ReasonNameInUse)
		}
		return nil, dnderr.WrapStore(err, "failed to create character")
	}

	s.guard.Record(ctx, uniqueness.KindCharacterName, created.Name)
	s.replicator.SyncCharacter(ctx, created)
	s.logger.Debug("character created", "character_id", created.ID, "user_id", userID)
	return created, nil
}

// GetCharacter implements Service
func (s *service) GetCharacter(ctx context.Context, input *GetCharacterInput) (*entities.PlayerCharacter, error) {
	if input == nil || input.CharacterID == "" {
		return nil, dnderr.InvalidArgument("character ID is required")
	}

	if input.ForceClearCache {
		s.cache.PlayerCharacters.Invalidate(ctx, input.CharacterID)
	}
	character, err := s.getCharacter(ctx, input.CharacterID)
	if err != nil {
		return nil, err
	}
	if input.UserID != "" && character.UserID != input.UserID {
		return nil, dnderr.Forbidden("character belongs to another user").
			WithReason(dnderr.ReasonCharacterOwnerMismatch).
			WithMeta("character_id", input.CharacterID)
	}
	return character, nil
}

// getCharacter reads through the cache. A read from the store reseeds the
// social projection and the embedded party and guild copies.
func (s *service) getCharacter(ctx context.Context, characterID string) (*entities.PlayerCharacter, error) {
	fromStore := false
	result, err := cache.GetOrLoad(ctx, s.cache.PlayerCharacters, characterID, func(ctx context.Context) (cache.Result[*entities.PlayerCharacter], error) {
		character, err := s.repository.Get(ctx, characterID)
		if dnderr.IsNotFound(err) {
			return cache.Missing[*entities.PlayerCharacter](), nil
		}
		if err != nil {
			return cache.Missing[*entities.PlayerCharacter](), err
		}
		fromStore = true
		return cache.Found(character), nil
	})
	if err != nil {
		return nil, dnderr.WrapStore(err, fmt.Sprintf("failed to get character %s", characterID))
	}

	character, ok := result.Get()
	if !ok {
		return nil, dnderr.NotFoundf("character %s not found", characterID)
	}
	if fromStore {
		s.replicator.SyncCharacter(ctx, character)
	}
	return character, nil
}

// ListCharacters implements Service
func (s *service) ListCharacters(ctx context.Context, userID string) ([]*entities.PlayerCharacter, error) {
	if userID == "" {
		return nil, dnderr.InvalidArgument("user ID is required")
	}

	ids, err := s.repository.ListIDsByUser(ctx, userID)
	if err != nil {
		return nil, dnderr.WrapStore(err, "failed to list characters")
	}

	loaded := make([]*entities.PlayerCharacter, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)
	for i, id := range ids {
		g.Go(func() error {
			character, err := s.getCharacter(gctx, id)
			if dnderr.IsNotFound(err) {
				return nil
			}
			if err != nil {
				return err
			}
			loaded[i] = character
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	characters := make([]*entities.PlayerCharacter, 0, len(loaded))
	for _, c := range loaded {
		if c != nil {
			characters = append(characters, c)
		}
	}
	return characters, nil
}

// UpdateCharacter implements Service
func (s *service) UpdateCharacter(ctx context.Context, input *UpdateCharacterInput) (*entities.PlayerCharacter, error) {
	if input == nil || input.Character == nil || input.Character.ID == "" {
		return nil, dnderr.InvalidArgument("character is required")
	}

	stored, err := s.repository.Update(ctx, input.Character)
	if err != nil {
		return nil, dnderr.WrapStore(err, fmt.Sprintf("failed to update character %s", input.Character.ID))
	}
	s.replicator.SyncCharacter(ctx, stored)

	playerStorage := entities.NewStorageID(entities.StorageTypePlayer, stored.UserID)
	if input.StorageItems != nil {
		err := s.storages.UpdateStorageItems(ctx, &storageService.UpdateStorageItemsInput{
			StorageID: playerStorage,
			Items:     input.StorageItems,
			LockFree:  true,
		})
		if err != nil {
			return nil, err
		}
	}

	if input.DeleteStorageReservation {
		held := []entities.StorageID{playerStorage}
		if stored.GuildID != 0 {
			held = append(held, entities.NewStorageID(entities.StorageTypeGuild, fmt.Sprint(stored.GuildID)))
		}
		if err := s.storages.ReleaseHeldBy(ctx, stored.ID, held...); err != nil {
			s.logger.Warn("failed to release storage reservations", "character_id", stored.ID, "error", err)
		}
	}
	return stored, nil
}

// DeleteCharacter implements Service
func (s *service) DeleteCharacter(ctx context.Context, userID, characterID string) error {
	if userID == "" || characterID == "" {
		return dnderr.InvalidArgument("user ID and character ID are required")
	}

	existing, err := s.repository.Get(ctx, characterID)
	if err != nil {
		return dnderr.WrapStore(err, fmt.Sprintf("failed to get character %s", characterID))
	}
	if existing.UserID != userID {
		return dnderr.Forbidden("character belongs to another user").
			WithReason(dnderr.ReasonCharacterOwnerMismatch).
			WithMeta("character_id", characterID)
	}
	if err := s.repository.Delete(ctx, userID, characterID); err != nil {
		return dnderr.WrapStore(err, fmt.Sprintf("failed to delete character %s", characterID))
	}

	s.guard.Forget(ctx, uniqueness.KindCharacterName, existing.Name)
	s.replicator.ForgetCharacter(ctx, characterID)
	if existing.PartyID != 0 {
		s.cache.Parties.Invalidate(ctx, existing.PartyID)
	}
	if existing.GuildID != 0 {
		s.cache.Guilds.Invalidate(ctx, existing.GuildID)
	}
	return nil
}

// GetSocialCharacter implements Service
func (s *service) GetSocialCharacter(ctx context.Context, characterID string) (entities.SocialCharacter, error) {
	if characterID == "" {
		return entities.SocialCharacter{}, dnderr.InvalidArgument("character ID is required")
	}

	result, err := cache.GetOrLoad(ctx, s.cache.SocialCharacters, characterID, func(ctx context.Context) (cache.Result[entities.SocialCharacter], error) {
		character, err := s.repository.Get(ctx, characterID)
		if dnderr.IsNotFound(err) {
			return cache.Missing[entities.SocialCharacter](), nil
		}
		if err != nil {
			return cache.Missing[entities.SocialCharacter](), err
		}
		return cache.Found(entities.NewSocialCharacter(character)), nil
	})
	if err != nil {
		return entities.SocialCharacter{}, dnderr.WrapStore(err, fmt.Sprintf("failed to get character %s", characterID))
	}

	social, ok := result.Get()
	if !ok {
		return entities.SocialCharacter{}, dnderr.NotFoundf("character %s not found", characterID)
	}
	return social, nil
}

// FindCharacterName implements Service
func (s *service) FindCharacterName(ctx context.Context, name string) (bool, error) {
	if name == "" {
		return false, dnderr.InvalidArgument("name is required")
	}
	return s.guard.Exists(ctx, uniqueness.KindCharacterName, name)
}

// GetIDByCharacterName implements Service
func (s *service) GetIDByCharacterName(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", dnderr.InvalidArgument("name is required")
	}
	id, err := s.repository.GetIDByName(ctx, name)
	if err != nil {
		return "", dnderr.WrapStore(err, fmt.Sprintf("failed to resolve character name %q", name))
	}
	return id, nil
}

// GetUserIDByCharacterName implements Service
func (s *service) GetUserIDByCharacterName(ctx context.Context, name string) (string, error) {
	id, err := s.GetIDByCharacterName(ctx, name)
	if err != nil {
		return "", err
	}
	character, err := s.getCharacter(ctx, id)
	if err != nil {
		return "", err
	}
	return character.UserID, nil
}

// SetCharacterUnmuteTimeByName implements Service. The cached character is
// dropped so the next read carries the new time.
func (s *service) SetCharacterUnmuteTimeByName(ctx context.Context, name string, unmuteTime int64) error {
	id, err := s.GetIDByCharacterName(ctx, name)
	if err != nil {
		return err
	}
	if err := s.repository.UpdateUnmuteTime(ctx, id, unmuteTime); err != nil {
		return dnderr.WrapStore(err, fmt.Sprintf("failed to set unmute time of %s", id))
	}
	s.cache.PlayerCharacters.Invalidate(ctx, id)
	s.logger.Debug("character unmute time set", "character_id", id, "unmute_time", unmuteTime)
	return nil
}
