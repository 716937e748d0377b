package parties

//go:generate mockgen -destination=mock/mock.go -package=mockparties -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
)

// Repository defines the interface for party persistence. Parties are
// stored without members; membership lives on the characters.
type Repository interface {
	// Create stores a new party and returns its ID
	Create(ctx context.Context, shareExp, shareItem bool, leaderID string) (int, error)

	// Get retrieves a party, with no members filled in
	Get(ctx context.Context, id int) (*entities.Party, error)

	// UpdateSetting replaces the share flags
	UpdateSetting(ctx context.Context, id int, shareExp, shareItem bool) error

	// UpdateLeader replaces the leader
	UpdateLeader(ctx context.Context, id int, leaderID string) error

	// Delete removes a party
	Delete(ctx context.Context, id int) error
}
