package guildrequests

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories"
)

// InMemoryRepository is an in-memory implementation of the guild request
// repository
type InMemoryRepository struct {
	mu       sync.RWMutex
	requests map[int]map[string]int64
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		requests: make(map[int]map[string]int64),
	}
}

// Create records a request
func (r *InMemoryRepository) Create(_ context.Context, guildID int, requesterID string, at int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	pending, ok := r.requests[guildID]
	if !ok {
		pending = make(map[string]int64)
		r.requests[guildID] = pending
	}
	if _, exists := pending[requesterID]; !exists {
		pending[requesterID] = at
	}
	return nil
}

// Delete drops one request
func (r *InMemoryRepository) Delete(_ context.Context, guildID int, requesterID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.requests[guildID], requesterID)
	return nil
}

// List returns requester IDs, oldest request first
func (r *InMemoryRepository) List(_ context.Context, guildID, skip, limit int) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pending := r.requests[guildID]
	ids := make([]string, 0, len(pending))
	for id := range pending {
		ids = append(ids, id)
	}
	// ties break on ID, as a sorted set would
	sort.Slice(ids, func(i, j int) bool {
		if pending[ids[i]] != pending[ids[j]] {
			return pending[ids[i]] < pending[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return repositories.Page(ids, skip, limit), nil
}

// Count counts a guild's pending requests
func (r *InMemoryRepository) Count(_ context.Context, guildID int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.requests[guildID]), nil
}

// DeleteAll drops every request of a guild
func (r *InMemoryRepository) DeleteAll(_ context.Context, guildID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.requests, guildID)
	return nil
}
