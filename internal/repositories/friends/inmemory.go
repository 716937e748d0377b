package friends

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories"
)

// InMemoryRepository is an in-memory implementation of the friend repository
type InMemoryRepository struct {
	mu     sync.RWMutex
	held   map[string]map[string]int // id1 -> id2 -> state
	heldBy map[string]map[string]int // id2 -> id1 -> state
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		held:   make(map[string]map[string]int),
		heldBy: make(map[string]map[string]int),
	}
}

// Upsert records the pair in state
func (r *InMemoryRepository) Upsert(_ context.Context, id1, id2 string, state int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	put(r.held, id1, id2, state)
	put(r.heldBy, id2, id1, state)
	return nil
}

// Delete drops the pair id1 -> id2
func (r *InMemoryRepository) Delete(_ context.Context, id1, id2 string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.held[id1], id2)
	delete(r.heldBy[id2], id1)
	return nil
}

// List returns the far side of the pairs in state, ordered by ID
func (r *InMemoryRepository) List(_ context.Context, characterID string, byID2 bool, state, skip, limit int) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pairs := r.held[characterID]
	if byID2 {
		pairs = r.heldBy[characterID]
	}
	ids := make([]string, 0, len(pairs))
	for id, s := range pairs {
		if s == state {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return repositories.Page(ids, skip, limit), nil
}

// CountByID2 counts the pairs in state naming characterID as id2
func (r *InMemoryRepository) CountByID2(_ context.Context, characterID string, state int) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, s := range r.heldBy[characterID] {
		if s == state {
			count++
		}
	}
	return count, nil
}

func put(index map[string]map[string]int, from, to string, state int) {
	pairs, ok := index[from]
	if !ok {
		pairs = make(map[string]int)
		index[from] = pairs
	}
	pairs[to] = state
}
