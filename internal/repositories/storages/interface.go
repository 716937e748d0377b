package storages

//go:generate mockgen -destination=mock/mock.go -package=mockstorages -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
)

// Repository defines the interface for storage container persistence,
// including the durable reservation markers used by guild storages
type Repository interface {
	// GetItems returns the item slots of a container, empty when none
	GetItems(ctx context.Context, id entities.StorageID) ([]entities.CharacterItem, error)

	// UpdateItems replaces the item slots of a container
	UpdateItems(ctx context.Context, id entities.StorageID, items []entities.CharacterItem) error

	// FindReserved returns who holds the durable reservation marker, if anyone
	FindReserved(ctx context.Context, id entities.StorageID) (string, bool, error)

	// ClaimReserved sets the marker to reserverID unless another reserver
	// holds it. The check and the write are one atomic step. holder is the
	// reserver holding the marker afterwards.
	ClaimReserved(ctx context.Context, id entities.StorageID, reserverID string) (holder string, claimed bool, err error)

	// DeleteReserved clears the marker of one container
	DeleteReserved(ctx context.Context, id entities.StorageID) error

	// DeleteReservedBy clears every marker held by reserverID
	DeleteReservedBy(ctx context.Context, reserverID string) error

	// DeleteAllReserved clears every marker
	DeleteAllReserved(ctx context.Context) error
}
