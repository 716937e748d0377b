package parties

import (
	"context"
	"sync"

	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories"
)

// InMemoryRepository is an in-memory implementation of the party repository
type InMemoryRepository struct {
	mu      sync.RWMutex
	nextID  int
	parties map[int]*entities.Party
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		parties: make(map[int]*entities.Party),
	}
}

// Create stores a new party
func (r *InMemoryRepository) Create(_ context.Context, shareExp, shareItem bool, leaderID string) (int, error) {
	if leaderID == "" {
		return 0, dnderr.InvalidArgument("party leader ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	r.parties[r.nextID] = entities.NewParty(r.nextID, shareExp, shareItem, leaderID)
	return r.nextID, nil
}

// Get retrieves a party
func (r *InMemoryRepository) Get(_ context.Context, id int) (*entities.Party, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	party, ok := r.parties[id]
	if !ok {
		return nil, repositories.NewRecordNotFoundError("party", id)
	}
	return party.Clone(), nil
}

// UpdateSetting replaces the share flags
func (r *InMemoryRepository) UpdateSetting(_ context.Context, id int, shareExp, shareItem bool) error {
	return r.mutate(id, func(p *entities.Party) {
		p.Setting(shareExp, shareItem)
	})
}

// UpdateLeader replaces the leader
func (r *InMemoryRepository) UpdateLeader(_ context.Context, id int, leaderID string) error {
	return r.mutate(id, func(p *entities.Party) {
		p.SetLeader(leaderID)
	})
}

// Delete removes a party
func (r *InMemoryRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.parties[id]; !ok {
		return repositories.NewRecordNotFoundError("party", id)
	}
	delete(r.parties, id)
	return nil
}

func (r *InMemoryRepository) mutate(id int, fn func(*entities.Party)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	party, ok := r.parties[id]
	if !ok {
		return repositories.NewRecordNotFoundError("party", id)
	}
	fn(party)
	return nil
}
