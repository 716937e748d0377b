package buildings

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories"
)

// InMemoryRepository is an in-memory implementation of the building repository
type InMemoryRepository struct {
	mu        sync.RWMutex
	buildings map[entities.BuildingLocation]map[string]entities.Building
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		buildings: make(map[entities.BuildingLocation]map[string]entities.Building),
	}
}

// Create places a new building
func (r *InMemoryRepository) Create(_ context.Context, loc entities.BuildingLocation, building *entities.Building) error {
	if building == nil || building.ID == "" {
		return dnderr.InvalidArgument("building ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	onMap, ok := r.buildings[loc]
	if !ok {
		onMap = make(map[string]entities.Building)
		r.buildings[loc] = onMap
	}
	if _, exists := onMap[building.ID]; exists {
		return dnderr.AlreadyExistsf("building with ID '%s' already exists", building.ID).
			WithMeta("building_id", building.ID)
	}
	onMap[building.ID] = *building
	return nil
}

// Update overwrites an existing building
func (r *InMemoryRepository) Update(_ context.Context, loc entities.BuildingLocation, building *entities.Building) error {
	if building == nil || building.ID == "" {
		return dnderr.InvalidArgument("building ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.buildings[loc][building.ID]; !exists {
		return repositories.NewRecordNotFoundError("building", building.ID)
	}
	r.buildings[loc][building.ID] = *building
	return nil
}

// Delete removes a building
func (r *InMemoryRepository) Delete(_ context.Context, loc entities.BuildingLocation, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.buildings[loc][id]; !exists {
		return repositories.NewRecordNotFoundError("building", id)
	}
	delete(r.buildings[loc], id)
	return nil
}

// List returns every building of a map instance
func (r *InMemoryRepository) List(_ context.Context, loc entities.BuildingLocation) ([]entities.Building, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]entities.Building, 0, len(r.buildings[loc]))
	for _, b := range r.buildings[loc] {
		list = append(list, b)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}
