package buildings

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/KirkDiggler/mmo-db-gateway/internal/cache"
	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
	buildingRepo "github.com/KirkDiggler/mmo-db-gateway/internal/repositories/buildings"
	storageService "github.com/KirkDiggler/mmo-db-gateway/internal/services/storages"
)

// Repository is an alias for the building repository interface
type Repository = buildingRepo.Repository

// Service defines the building service interface
type Service interface {
	CreateBuilding(ctx context.Context, loc entities.BuildingLocation, building *entities.Building) (*entities.Building, error)

	// UpdateBuilding saves a building and, when given, its storage items
	UpdateBuilding(ctx context.Context, input *UpdateBuildingInput) (*entities.Building, error)

	DeleteBuilding(ctx context.Context, loc entities.BuildingLocation, buildingID string) error

	// GetBuildings returns every building of a map instance ordered by ID
	GetBuildings(ctx context.Context, loc entities.BuildingLocation) ([]entities.Building, error)
}

// UpdateBuildingInput carries a building save
type UpdateBuildingInput struct {
	Location     entities.BuildingLocation
	Building     *entities.Building
	StorageItems []entities.CharacterItem // replaces the building storage when not nil
}

type service struct {
	repository Repository
	storages   storageService.Service
	cache      *cache.Cache
	logger     hclog.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository     Repository             // Required
	StorageService storageService.Service // Required
	Cache          *cache.Cache           // Required
	Logger         hclog.Logger
}

// NewService creates a new building service
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

	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &service{
		repository: cfg.Repository,
		storages:   cfg.StorageService,
		cache:      cfg.Cache,
		logger:     logger,
	}
}

func validate(loc entities.BuildingLocation, building *entities.Building) error {
	if loc.MapName == "" {
		return dnderr.InvalidArgument("map name is required")
	}
	if building == nil || building.ID == "" {
		return dnderr.InvalidArgument("building ID is required")
	}
	return nil
}

// CreateBuilding implements Service
func (s *service) CreateBuilding(ctx context.Context, loc entities.BuildingLocation, building *entities.Building) (*entities.Building, error) {
	if err := validate(loc, building); err != nil {
		return nil, err
	}
	if err := s.repository.Create(ctx, loc, building); err != nil {
		return nil, dnderr.WrapStore(err, fmt.Sprintf("failed to create building %s", building.ID))
	}

	created := *building
	s.patchCached(ctx, loc, func(list []entities.Building) []entities.Building {
		return upsert(list, created)
	})
	return &created, nil
}

// UpdateBuilding implements Service
func (s *service) UpdateBuilding(ctx context.Context, input *UpdateBuildingInput) (*entities.Building, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input cannot be nil")
	}
	if err := validate(input.Location, input.Building); err != nil {
		return nil, err
	}
	if err := s.repository.Update(ctx, input.Location, input.Building); err != nil {
		return nil, dnderr.WrapStore(err, fmt.Sprintf("failed to update building %s", input.Building.ID))
	}

	updated := *input.Building
	s.patchCached(ctx, input.Location, func(list []entities.Building) []entities.Building {
		return upsert(list, updated)
	})

	if input.StorageItems != nil {
		err := s.storages.UpdateStorageItems(ctx, &storageService.UpdateStorageItemsInput{
			StorageID: entities.NewStorageID(entities.StorageTypeBuilding, updated.ID),
			Items:     input.StorageItems,
			LockFree:  true,
		})
		if err != nil {
			return nil, err
		}
	}
	return &updated, nil
}

// DeleteBuilding implements Service
func (s *service) DeleteBuilding(ctx context.Context, loc entities.BuildingLocation, buildingID string) error {
	if loc.MapName == "" || buildingID == "" {
		return dnderr.InvalidArgument("map name and building ID are required")
	}
	if err := s.repository.Delete(ctx, loc, buildingID); err != nil {
		return dnderr.WrapStore(err, fmt.Sprintf("failed to delete building %s", buildingID))
	}

	s.patchCached(ctx, loc, func(list []entities.Building) []entities.Building {
		out := list[:0]
		for _, b := range list {
			if b.ID != buildingID {
				out = append(out, b)
			}
		}
		return out
	})
	s.cache.StorageItems.Invalidate(ctx, entities.NewStorageID(entities.StorageTypeBuilding, buildingID))
	return nil
}

// GetBuildings implements Service
func (s *service) GetBuildings(ctx context.Context, loc entities.BuildingLocation) ([]entities.Building, error) {
	if loc.MapName == "" {
		return nil, dnderr.InvalidArgument("map name is required")
	}
	result, err := cache.GetOrLoad(ctx, s.cache.Buildings, loc, func(ctx context.Context) (cache.Result[[]entities.Building], error) {
		list, err := s.repository.List(ctx, loc)
		if err != nil {
			return cache.Missing[[]entities.Building](), err
		}
		if list == nil {
			list = []entities.Building{}
		}
		return cache.Found(list), nil
	})
	if err != nil {
		return nil, dnderr.WrapStore(err, fmt.Sprintf("failed to list buildings of %s", loc.MapName))
	}
	return result.Value(), nil
}

// patchCached edits the cached building list of a map instance. An uncached
// list is left for the next read to load.
func (s *service) patchCached(ctx context.Context, loc entities.BuildingLocation, fn func([]entities.Building) []entities.Building) {
	cached, err := s.cache.Buildings.Get(ctx, loc)
	if err != nil {
		s.logger.Warn("building cache read failed, dropping entry", "map", loc.MapName, "channel", loc.Channel, "error", err)
		s.cache.Buildings.Invalidate(ctx, loc)
		return
	}
	list, ok := cached.Get()
	if !ok {
		return
	}
	s.cache.Buildings.Store(ctx, loc, fn(list))
}

func upsert(list []entities.Building, building entities.Building) []entities.Building {
	for i := range list {
		if list[i].ID == building.ID {
			list[i] = building
			return list
		}
	}
	list = append(list, building)
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}
