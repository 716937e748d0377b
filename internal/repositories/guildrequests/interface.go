package guildrequests

//go:generate mockgen -destination=mock/mock.go -package=mockguildrequests -source=interface.go

import (
	"context"
)

// Repository defines the interface for pending guild join requests. A
// character holds at most one request per guild.
type Repository interface {
	// Create records a request made at the given unix time. Repeating a
	// request keeps the original time.
	Create(ctx context.Context, guildID int, requesterID string, at int64) error

	// Delete drops one request
	Delete(ctx context.Context, guildID int, requesterID string) error

	// List returns requester IDs, oldest request first
	List(ctx context.Context, guildID, skip, limit int) ([]string, error)

	// Count counts a guild's pending requests
	Count(ctx context.Context, guildID int) (int, error)

	// DeleteAll drops every request of a guild
	DeleteAll(ctx context.Context, guildID int) error
}
