package guilds

//go:generate mockgen -destination=mock/mock.go -package=mockguilds -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
)

// Repository defines the interface for guild persistence. Guilds are
// stored without members; membership lives on the characters.
type Repository interface {
	// Create stores a new guild, assigns its ID and returns it. The name
	// must be unused.
	Create(ctx context.Context, guild *entities.Guild) (int, error)

	// Get retrieves a guild, with no members filled in
	Get(ctx context.Context, id int) (*entities.Guild, error)

	// Save overwrites every guild field except gold and members
	Save(ctx context.Context, guild *entities.Guild) error

	// ChangeGold adds delta to the guild's gold and returns the new balance
	ChangeGold(ctx context.Context, id, delta int) (int, error)

	// Delete removes a guild and frees its name
	Delete(ctx context.Context, id int) error

	// FindName reports whether a guild name is taken
	FindName(ctx context.Context, name string) (bool, error)
}
