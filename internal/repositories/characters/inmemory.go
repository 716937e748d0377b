package characters

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories"
)

// InMemoryRepository is an in-memory implementation of the character repository
// Useful for testing and development
type InMemoryRepository struct {
	mu           sync.RWMutex
	characters   map[string]*entities.PlayerCharacter
	names        map[string]string
	byUser       map[string][]string
	partyMembers map[int][]string
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		characters:   make(map[string]*entities.PlayerCharacter),
		names:        make(map[string]string),
		byUser:       make(map[string][]string),
		partyMembers: make(map[int][]string),
	}
}

// Create stores a new character
func (r *InMemoryRepository) Create(_ context.Context, character *entities.PlayerCharacter) error {
	if character == nil {
		return dnderr.InvalidArgument("character cannot be nil")
	}
	if character.ID == "" || character.UserID == "" || character.Name == "" {
		return dnderr.InvalidArgument("character ID, user ID and name are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[character.ID]; exists {
		return dnderr.AlreadyExistsf("character with ID '%s' already exists", character.ID).
			WithMeta("character_id", character.ID)
	}
	name := strings.ToLower(character.Name)
	if _, taken := r.names[name]; taken {
		return dnderr.AlreadyExistsf("character name '%s' already exists", character.Name).
			WithMeta("name", character.Name)
	}

	r.characters[character.ID] = character.Clone()
	r.names[name] = character.ID
	r.byUser[character.UserID] = append(r.byUser[character.UserID], character.ID)
	if character.PartyID != 0 {
		r.partyMembers[character.PartyID] = append(r.partyMembers[character.PartyID], character.ID)
	}
	return nil
}

// Get retrieves a character by ID
func (r *InMemoryRepository) Get(_ context.Context, id string) (*entities.PlayerCharacter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	character, ok := r.characters[id]
	if !ok {
		return nil, repositories.NewRecordNotFoundError("character", id)
	}
	return character.Clone(), nil
}

// ListIDsByUser returns a user's character IDs in creation order
func (r *InMemoryRepository) ListIDsByUser(_ context.Context, userID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.byUser[userID]...), nil
}

// Update overwrites an existing character's progress
func (r *InMemoryRepository) Update(_ context.Context, character *entities.PlayerCharacter) (*entities.PlayerCharacter, error) {
	if character == nil {
		return nil, dnderr.InvalidArgument("character cannot be nil")
	}
	var stored *entities.PlayerCharacter
	err := r.mutate(character.ID, func(c *entities.PlayerCharacter) {
		next := character.Clone()
		keepIdentity(next, c)
		*c = *next
		stored = c.Clone()
	})
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// Delete removes a character
func (r *InMemoryRepository) Delete(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	character, ok := r.characters[id]
	if !ok || character.UserID != userID {
		return repositories.NewRecordNotFoundError("character", id)
	}
	delete(r.characters, id)
	delete(r.names, strings.ToLower(character.Name))
	r.byUser[userID] = without(r.byUser[userID], id)
	if character.PartyID != 0 {
		r.partyMembers[character.PartyID] = without(r.partyMembers[character.PartyID], id)
	}
	return nil
}

// FindName reports whether a character name is taken
func (r *InMemoryRepository) FindName(_ context.Context, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.names[strings.ToLower(name)]
	return ok, nil
}

// GetIDByName resolves a character name to its ID
func (r *InMemoryRepository) GetIDByName(_ context.Context, name string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.names[strings.ToLower(name)]
	if !ok {
		return "", repositories.NewRecordNotFoundError("character_name", name)
	}
	return id, nil
}

// UpdateParty moves a character into a party
func (r *InMemoryRepository) UpdateParty(_ context.Context, id string, partyID int) error {
	return r.mutate(id, func(c *entities.PlayerCharacter) {
		c.PartyID = partyID
	})
}

// UpdateGuild moves a character into a guild with a role
func (r *InMemoryRepository) UpdateGuild(_ context.Context, id string, guildID, role int) error {
	return r.mutate(id, func(c *entities.PlayerCharacter) {
		c.GuildID = guildID
		c.GuildRole = role
		if guildID == 0 {
			c.GuildRole = 0
		}
	})
}

// UpdateUnmuteTime sets the unix time a character's chat mute ends
func (r *InMemoryRepository) UpdateUnmuteTime(_ context.Context, id string, unmuteTime int64) error {
	return r.mutate(id, func(c *entities.PlayerCharacter) {
		c.UnmuteTime = unmuteTime
	})
}

// ListByParty returns party members in join order
func (r *InMemoryRepository) ListByParty(_ context.Context, partyID int) ([]*entities.PlayerCharacter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members := make([]*entities.PlayerCharacter, 0, len(r.partyMembers[partyID]))
	for _, id := range r.partyMembers[partyID] {
		if c, ok := r.characters[id]; ok {
			members = append(members, c.Clone())
		}
	}
	return members, nil
}

// ListByGuild returns guild members ordered by ID
func (r *InMemoryRepository) ListByGuild(_ context.Context, guildID int) ([]*entities.PlayerCharacter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var members []*entities.PlayerCharacter
	for _, c := range r.characters {
		if c.GuildID == guildID && guildID != 0 {
			members = append(members, c.Clone())
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].ID < members[j].ID })
	return members, nil
}

// ClearParty removes every member from a party
func (r *InMemoryRepository) ClearParty(_ context.Context, partyID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, id := range r.partyMembers[partyID] {
		if c, ok := r.characters[id]; ok {
			c.PartyID = 0
		}
	}
	delete(r.partyMembers, partyID)
	return nil
}

// ClearGuild removes every member from a guild
func (r *InMemoryRepository) ClearGuild(_ context.Context, guildID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.characters {
		if c.GuildID == guildID {
			c.GuildID = 0
			c.GuildRole = 0
		}
	}
	return nil
}

// mutate applies fn to a stored character, keeping the party index in step
func (r *InMemoryRepository) mutate(id string, fn func(*entities.PlayerCharacter)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	character, ok := r.characters[id]
	if !ok {
		return repositories.NewRecordNotFoundError("character", id)
	}

	oldParty := character.PartyID
	fn(character)
	if character.PartyID != oldParty {
		if oldParty != 0 {
			r.partyMembers[oldParty] = without(r.partyMembers[oldParty], id)
		}
		if character.PartyID != 0 {
			r.partyMembers[character.PartyID] = append(r.partyMembers[character.PartyID], id)
		}
	}
	return nil
}

func without(ids []string, id string) []string {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
