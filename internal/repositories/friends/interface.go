package friends

//go:generate mockgen -destination=mock/mock.go -package=mockfriends -source=interface.go

import (
	"context"
)

// Repository defines the interface for friend pair persistence. A pair is
// directed: id1 holds id2 in a state, and at most one state is kept per pair.
type Repository interface {
	// Upsert records the pair in state, replacing any earlier state
	Upsert(ctx context.Context, id1, id2 string, state int) error

	// Delete drops the pair id1 -> id2
	Delete(ctx context.Context, id1, id2 string) error

	// List returns the far side of the pairs in state, ordered by ID. By
	// default the pairs held by characterID are read; with byID2 the pairs
	// naming characterID as id2 are read and their id1 returned.
	List(ctx context.Context, characterID string, byID2 bool, state, skip, limit int) ([]string, error)

	// CountByID2 counts the pairs in state naming characterID as id2
	CountByID2(ctx context.Context, characterID string, state int) (int, error)
}
