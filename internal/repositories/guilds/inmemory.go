package guilds

import (
	"context"
	"strings"
	"sync"

	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories"
)

// InMemoryRepository is an in-memory implementation of the guild repository
type InMemoryRepository struct {
	mu     sync.RWMutex
	nextID int
	guilds map[int]*entities.Guild
	names  map[string]int
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		guilds: make(map[int]*entities.Guild),
		names:  make(map[string]int),
	}
}

// Create stores a new guild
func (r *InMemoryRepository) Create(_ context.Context, guild *entities.Guild) (int, error) {
	if guild == nil {
		return 0, dnderr.InvalidArgument("guild cannot be nil")
	}
	if guild.Name == "" || guild.LeaderID == "" {
		return 0, dnderr.InvalidArgument("guild name and leader ID are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.ToLower(guild.Name)
	if _, taken := r.names[name]; taken {
		return 0, dnderr.AlreadyExistsf("guild name '%s' already exists", guild.Name).
			WithMeta("name", guild.Name)
	}

	r.nextID++
	stored := stripMembers(guild)
	stored.ID = r.nextID
	r.guilds[stored.ID] = stored
	r.names[name] = stored.ID
	return stored.ID, nil
}

// Get retrieves a guild
func (r *InMemoryRepository) Get(_ context.Context, id int) (*entities.Guild, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	guild, ok := r.guilds[id]
	if !ok {
		return nil, repositories.NewRecordNotFoundError("guild", id)
	}
	return guild.Clone(), nil
}

// Save overwrites every guild field except gold and members
func (r *InMemoryRepository) Save(_ context.Context, guild *entities.Guild) error {
	if guild == nil {
		return dnderr.InvalidArgument("guild cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.guilds[guild.ID]
	if !ok {
		return repositories.NewRecordNotFoundError("guild", guild.ID)
	}
	stored := stripMembers(guild)
	stored.Gold = existing.Gold
	r.guilds[guild.ID] = stored
	return nil
}

// ChangeGold adds delta to the guild's gold
func (r *InMemoryRepository) ChangeGold(_ context.Context, id, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	guild, ok := r.guilds[id]
	if !ok {
		return 0, repositories.NewRecordNotFoundError("guild", id)
	}
	guild.Gold += delta
	return guild.Gold, nil
}

// Delete removes a guild and frees its name
func (r *InMemoryRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	guild, ok := r.guilds[id]
	if !ok {
		return repositories.NewRecordNotFoundError("guild", id)
	}
	delete(r.guilds, id)
	delete(r.names, strings.ToLower(guild.Name))
	return nil
}

// FindName reports whether a guild name is taken
func (r *InMemoryRepository) FindName(_ context.Context, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.names[strings.ToLower(name)]
	return ok, nil
}

func stripMembers(guild *entities.Guild) *entities.Guild {
	stored := guild.Clone()
	stored.Members = make(map[string]entities.SocialCharacter)
	if stored.Skills == nil {
		stored.Skills = make(map[int]int)
	}
	return stored
}
