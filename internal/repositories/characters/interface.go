package characters

//go:generate mockgen -destination=mock/mock.go -package=mockcharacters -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
)

// Repository defines the interface for character persistence. A character's
// PartyID and GuildID fields are the source of truth for party and guild
// membership; the member lists of parties and guilds are derived from them.
type Repository interface {
	// Create stores a new character. The name must be unused.
	Create(ctx context.Context, character *entities.PlayerCharacter) error

	// Get retrieves a character by ID
	Get(ctx context.Context, id string) (*entities.PlayerCharacter, error)

	// ListIDsByUser returns a user's character IDs in creation order
	ListIDsByUser(ctx context.Context, userID string) ([]string, error)

	// Update overwrites an existing character's progress and returns what was
	// stored. Owner, name, party, guild and mute fields keep their stored
	// values.
	Update(ctx context.Context, character *entities.PlayerCharacter) (*entities.PlayerCharacter, error)

	// Delete removes a character owned by userID
	Delete(ctx context.Context, userID, id string) error

	// FindName reports whether a character name is taken
	FindName(ctx context.Context, name string) (bool, error)

	// GetIDByName resolves a character name to its ID
	GetIDByName(ctx context.Context, name string) (string, error)

	// UpdateParty moves a character into a party, 0 to leave
	UpdateParty(ctx context.Context, id string, partyID int) error

	// UpdateGuild moves a character into a guild with a role, 0 to leave
	UpdateGuild(ctx context.Context, id string, guildID, role int) error

	// UpdateUnmuteTime sets the unix time a character's chat mute ends
	UpdateUnmuteTime(ctx context.Context, id string, unmuteTime int64) error

	// ListByParty returns party members in the order they joined
	ListByParty(ctx context.Context, partyID int) ([]*entities.PlayerCharacter, error)

	// ListByGuild returns guild members ordered by ID
	ListByGuild(ctx context.Context, guildID int) ([]*entities.PlayerCharacter, error)

	// ClearParty removes every member from a party
	ClearParty(ctx context.Context, partyID int) error

	// ClearGuild removes every member from a guild
	ClearGuild(ctx context.Context, guildID int) error
}

// keepIdentity copies the fields Update never changes from the stored
// character onto next
func keepIdentity(next, stored *entities.PlayerCharacter) {
	next.UserID = stored.UserID
	next.UnmuteTime = stored.UnmuteTime
	next.Name = stored.Name
	next.PartyID = stored.PartyID
	next.GuildID = stored.GuildID
	next.GuildRole = stored.GuildRole
}
