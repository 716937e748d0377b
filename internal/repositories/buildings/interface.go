package buildings

//go:generate mockgen -destination=mock/mock.go -package=mockbuildings -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
)

// Repository defines the interface for building persistence, one set of
// buildings per map instance
type Repository interface {
	// Create places a new building
	Create(ctx context.Context, loc entities.BuildingLocation, building *entities.Building) error

	// Update overwrites an existing building
	Update(ctx context.Context, loc entities.BuildingLocation, building *entities.Building) error

	// Delete removes a building
	Delete(ctx context.Context, loc entities.BuildingLocation, id string) error

	// List returns every building of a map instance ordered by ID
	List(ctx context.Context, loc entities.BuildingLocation) ([]entities.Building, error)
}
