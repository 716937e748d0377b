package storages

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/KirkDiggler/mmo-db-gateway/internal/cache"
	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
	storageRepo "github.com/KirkDiggler/mmo-db-gateway/internal/repositories/storages"
	"github.com/KirkDiggler/mmo-db-gateway/internal/reservation"
)

// Repository is an alias for the storage repository interface
type Repository = storageRepo.Repository

// Service defines the storage service interface
type Service interface {
	// ReadStorageItems returns a container's items. With ReadForUpdate set
	// the container is reserved for the caller until the window passes or
	// the caller commits.
	ReadStorageItems(ctx context.Context, input *ReadStorageItemsInput) ([]entities.CharacterItem, error)

	// UpdateStorageItems commits new items for a container
	UpdateStorageItems(ctx context.Context, input *UpdateStorageItemsInput) error

	// ReleaseHeldBy drops the in-memory reservations of the given containers
	// and every durable marker naming reserverID
	ReleaseHeldBy(ctx context.Context, reserverID string, ids ...entities.StorageID) error

	// DeleteAllReservedStorage clears every durable marker. The gateway calls
	// it once at start-up.
	DeleteAllReservedStorage(ctx context.Context) error
}

// ReadStorageItemsInput selects a container and how it is read
type ReadStorageItemsInput struct {
	StorageID     entities.StorageID
	ReadForUpdate bool
	ReserverID    string // character taking the reservation
}

// UpdateStorageItemsInput carries a container's new items
type UpdateStorageItemsInput struct {
	StorageID         entities.StorageID
	Items             []entities.CharacterItem
	DeleteReservation bool // also clear the durable marker of a guild storage
	LockFree          bool // write without holding a live reservation
}

type service struct {
	repository   Repository
	cache        *cache.Cache
	reservations *reservation.Manager
	logger       hclog.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository   Repository           // Required
	Cache        *cache.Cache         // Required
	Reservations *reservation.Manager // Required
	Logger       hclog.Logger
}

// NewService creates a new storage service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.Cache == nil {
		panic("cache is required")
	}
	if cfg.Reservations == nil {
		panic("reservation manager is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &service{
		repository:   cfg.Repository,
		cache:        cfg.Cache,
		reservations: cfg.Reservations,
		logger:       logger,
	}
}

// ReadStorageItems implements Service
func (s *service) ReadStorageItems(ctx context.Context, input *ReadStorageItemsInput) ([]entities.CharacterItem, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}
	if err := validateStorageID(input.StorageID); err != nil {
		return nil, err
	}

	id := input.StorageID
	if input.ReadForUpdate {
		if err := s.reserve(ctx, id, input.ReserverID); err != nil {
			return nil, err
		}
	}

	items, err := cache.GetOrLoad(ctx, s.cache.StorageItems, id, func(ctx context.Context) (cache.Result[[]entities.CharacterItem], error) {
		items, err := s.repository.GetItems(ctx, id)
		if err != nil || len(items) == 0 {
			return cache.Missing[[]entities.CharacterItem](), err
		}
		return cache.Found(items), nil
	})
	if err != nil {
		if input.ReadForUpdate {
			s.reservations.Release(id)
		}
		return nil, dnderr.WrapStore(err, fmt.Sprintf("failed to read storage %s", id))
	}
	// an empty container is never cached
	found, ok := items.Get()
	if !ok {
		return []entities.CharacterItem{}, nil
	}
	return found, nil
}

// reserve takes the in-memory reservation and, for guild storages, claims
// the durable marker shared by every gateway process
func (s *service) reserve(ctx context.Context, id entities.StorageID, reserverID string) error {
	guildStorage := id.Type == entities.StorageTypeGuild
	if guildStorage && reserverID == "" {
		return dnderr.InvalidArgument("reserver ID is required to reserve a guild storage")
	}

	if err := s.reservations.TryReserve(id); err != nil {
		return err
	}
	if !guildStorage {
		return nil
	}

	holder, claimed, err := s.repository.ClaimReserved(ctx, id, reserverID)
	if err != nil {
		s.reservations.Release(id)
		return dnderr.WrapStore(err, fmt.Sprintf("failed to reserve storage %s", id))
	}
	if !claimed {
		s.reservations.Release(id)
		s.logger.Debug("guild storage held by another member", "storage_id", id.String(), "holder", holder)
		return dnderr.Conflictf("storage %s is being used by another guild member", id).
			WithReason(dnderr.ReasonOtherMemberAccessingStorage).
			WithMeta("storage_id", id.String())
	}
	return nil
}

// UpdateStorageItems implements Service
func (s *service) UpdateStorageItems(ctx context.Context, input *UpdateStorageItemsInput) error {
	if input == nil {
		return dnderr.InvalidArgument("input cannot be nil")
	}
	if err := validateStorageID(input.StorageID); err != nil {
		return err
	}

	id := input.StorageID
	if err := s.reservations.Commit(id, input.LockFree); err != nil {
		return err
	}

	items := entities.CloneItems(input.Items)
	if items == nil {
		items = []entities.CharacterItem{}
	}
	if err := s.repository.UpdateItems(ctx, id, items); err != nil {
		return dnderr.WrapStore(err, fmt.Sprintf("failed to update storage %s", id))
	}
	s.cache.StorageItems.Store(ctx, id, items)

	if input.DeleteReservation && id.Type == entities.StorageTypeGuild {
		if err := s.repository.DeleteReserved(ctx, id); err != nil {
			s.logger.Warn("failed to clear storage reservation marker", "storage_id", id.String(), "error", err)
		}
	}
	return nil
}

// ReleaseHeldBy implements Service
func (s *service) ReleaseHeldBy(ctx context.Context, reserverID string, ids ...entities.StorageID) error {
	for _, id := range ids {
		s.reservations.Release(id)
	}
	if reserverID == "" {
		return nil
	}
	if err := s.repository.DeleteReservedBy(ctx, reserverID); err != nil {
		return dnderr.WrapStore(err, fmt.Sprintf("failed to clear reservations of %s", reserverID))
	}
	return nil
}

// DeleteAllReservedStorage implements Service
func (s *service) DeleteAllReservedStorage(ctx context.Context) error {
	if err := s.repository.DeleteAllReserved(ctx); err != nil {
		return dnderr.WrapStore(err, "failed to clear storage reservations")
	}
	s.logger.Info("cleared storage reservation markers")
	return nil
}

func validateStorageID(id entities.StorageID) error {
	if id.Type == entities.StorageTypeNone || id.OwnerID == "" {
		return dnderr.InvalidArgumentf("invalid storage id %s", id)
	}
	return nil
}
