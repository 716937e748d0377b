package storages

import (
	"context"
	"sync"

	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
)

// InMemoryRepository is an in-memory implementation of the storage repository
type InMemoryRepository struct {
	mu       sync.RWMutex
	items    map[entities.StorageID][]entities.CharacterItem
	reserved map[entities.StorageID]string
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		items:    make(map[entities.StorageID][]entities.CharacterItem),
		reserved: make(map[entities.StorageID]string),
	}
}

// GetItems returns the item slots of a container
func (r *InMemoryRepository) GetItems(_ context.Context, id entities.StorageID) ([]entities.CharacterItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := entities.CloneItems(r.items[id])
	if items == nil {
		items = []entities.CharacterItem{}
	}
	return items, nil
}

// UpdateItems replaces the item slots of a container
func (r *InMemoryRepository) UpdateItems(_ context.Context, id entities.StorageID, items []entities.CharacterItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[id] = entities.CloneItems(items)
	return nil
}

// FindReserved returns who holds the durable reservation marker
func (r *InMemoryRepository) FindReserved(_ context.Context, id entities.StorageID) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	reserver, ok := r.reserved[id]
	return reserver, ok, nil
}

// ClaimReserved sets the marker unless another reserver holds it
func (r *InMemoryRepository) ClaimReserved(_ context.Context, id entities.StorageID, reserverID string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if holder, ok := r.reserved[id]; ok {
		return holder, holder == reserverID, nil
	}
	r.reserved[id] = reserverID
	return reserverID, true, nil
}

// DeleteReserved clears the marker of one container
func (r *InMemoryRepository) DeleteReserved(_ context.Context, id entities.StorageID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.reserved, id)
	return nil
}

// DeleteReservedBy clears every marker held by reserverID
func (r *InMemoryRepository) DeleteReservedBy(_ context.Context, reserverID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, reserver := range r.reserved {
		if reserver == reserverID {
			delete(r.reserved, id)
		}
	}
	return nil
}

// DeleteAllReserved clears every marker
func (r *InMemoryRepository) DeleteAllReserved(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reserved = make(map[entities.StorageID]string)
	return nil
}
