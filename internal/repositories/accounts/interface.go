package accounts

//go:generate mockgen -destination=mock/mock.go -package=mockaccounts -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
)

// Repository defines the interface for user account persistence
type Repository interface {
	// Create stores a new account. Username and email must be unused.
	Create(ctx context.Context, account *entities.UserAccount) error

	// Get retrieves an account by user ID
	Get(ctx context.Context, userID string) (*entities.UserAccount, error)

	// GetByUsername retrieves an account by login name
	GetByUsername(ctx context.Context, username string) (*entities.UserAccount, error)

	// FindUsername reports whether a username is taken
	FindUsername(ctx context.Context, username string) (bool, error)

	// FindEmail reports whether an email is taken
	FindEmail(ctx context.Context, email string) (bool, error)

	// UpdateAccessToken replaces the current access token
	UpdateAccessToken(ctx context.Context, userID, token string) error

	// GetGold returns the gold balance
	GetGold(ctx context.Context, userID string) (int, error)

	// ChangeGold adds delta to the gold balance and returns the new balance
	ChangeGold(ctx context.Context, userID string, delta int) (int, error)

	// GetCash returns the cash balance
	GetCash(ctx context.Context, userID string) (int, error)

	// ChangeCash adds delta to the cash balance and returns the new balance
	ChangeCash(ctx context.Context, userID string, delta int) (int, error)

	// SetUnbanTime sets when a ban ends, in unix seconds
	SetUnbanTime(ctx context.Context, userID string, unbanTime int64) error
}
