package mail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
)

func TestInMemoryStateUpdates(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	id, err := repo.Create(ctx, &entities.Mail{ReceiverID: "user-1", Gold: 10})
	require.NoError(t, err)

	n, err := repo.UpdateRead(ctx, id, "user-2", 100)
	require.NoError(t, err)
	assert.Zero(t, n, "another user cannot read the mail")

	n, err = repo.UpdateDelete(ctx, id, "user-1", 100)
	require.NoError(t, err)
	assert.Zero(t, n, "unclaimed attachments block delete")

	n, err = repo.UpdateClaim(ctx, id, "user-1", 101)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.UpdateClaim(ctx, id, "user-1", 102)
	require.NoError(t, err)
	assert.Zero(t, n, "claim only once")

	n, err = repo.UpdateDelete(ctx, id, "user-1", 103)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	list, err := repo.List(ctx, "user-1", false)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestInMemoryListNewestFirst(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepository()

	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, &entities.Mail{ReceiverID: "user-1"})
		require.NoError(t, err)
	}
	_, err := repo.Create(ctx, &entities.Mail{ReceiverID: "user-2"})
	require.NoError(t, err)

	list, err := repo.List(ctx, "user-1", false)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int64{3, 2, 1}, []int64{list[0].ID, list[1].ID, list[2].ID})
}
