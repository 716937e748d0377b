package characters_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories/characters"
)

func TestInMemoryRepository(t *testing.T) {
	ctx := context.Background()
	repo := characters.NewInMemoryRepository()

	alice := &entities.PlayerCharacter{ID: "char-1", UserID: "user-1", Name: "Alice"}
	bob := &entities.PlayerCharacter{ID: "char-2", UserID: "user-1", Name: "Bob"}
	require.NoError(t, repo.Create(ctx, alice))
	require.NoError(t, repo.Create(ctx, bob))

	t.Run("names are unique ignoring case", func(t *testing.T) {
		err := repo.Create(ctx, &entities.PlayerCharacter{ID: "char-3", UserID: "user-2", Name: "ALICE"})
		assert.True(t, dnderr.Is(err, dnderr.CodeAlreadyExists))

		id, err := repo.GetIDByName(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "char-1", id)
	})

	t.Run("user characters keep creation order", func(t *testing.T) {
		ids, err := repo.ListIDsByUser(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"char-1", "char-2"}, ids)
	})

	t.Run("party membership follows the character", func(t *testing.T) {
		require.NoError(t, repo.UpdateParty(ctx, "char-2", 5))
		require.NoError(t, repo.UpdateParty(ctx, "char-1", 5))

		members, err := repo.ListByParty(ctx, 5)
		require.NoError(t, err)
		require.Len(t, members, 2)
		assert.Equal(t, "char-2", members[0].ID)

		require.NoError(t, repo.ClearParty(ctx, 5))
		members, err = repo.ListByParty(ctx, 5)
		require.NoError(t, err)
		assert.Empty(t, members)

		loaded, err := repo.Get(ctx, "char-1")
		require.NoError(t, err)
		assert.Zero(t, loaded.PartyID)
	})

	t.Run("leaving a guild resets the role", func(t *testing.T) {
		require.NoError(t, repo.UpdateGuild(ctx, "char-1", 9, 3))
		members, err := repo.ListByGuild(ctx, 9)
		require.NoError(t, err)
		require.Len(t, members, 1)
		assert.Equal(t, 3, members[0].GuildRole)

		require.NoError(t, repo.UpdateGuild(ctx, "char-1", 0, 3))
		loaded, err := repo.Get(ctx, "char-1")
		require.NoError(t, err)
		assert.Zero(t, loaded.GuildID)
		assert.Zero(t, loaded.GuildRole)
	})

	t.Run("delete checks the owner", func(t *testing.T) {
		err := repo.Delete(ctx, "user-2", "char-2")
		assert.True(t, dnderr.IsNotFound(err))

		require.NoError(t, repo.Delete(ctx, "user-1", "char-2"))
		found, err := repo.FindName(ctx, "Bob")
		require.NoError(t, err)
		assert.False(t, found)
	})
}
