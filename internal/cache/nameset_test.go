package cache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/mmo-db-gateway/internal/cache"
)

func TestNameSet(t *testing.T) {
	ctx := context.Background()
	c := cache.New(nil)

	found, err := c.GuildNames.Contains(ctx, "Foo")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.GuildNames.Add(ctx, "Foo"))

	for _, name := range []string{"Foo", "foo", " FOO "} {
		found, err = c.GuildNames.Contains(ctx, name)
		require.NoError(t, err)
		assert.True(t, found, name)
	}

	// sets are independent
	found, err = c.CharacterNames.Contains(ctx, "Foo")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.GuildNames.Remove(ctx, "fOO"))
	found, err = c.GuildNames.Contains(ctx, "Foo")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestNameSetDisabled(t *testing.T) {
	ctx := context.Background()
	c := cache.New(&cache.Config{Disabled: true})

	require.NoError(t, c.Usernames.Add(ctx, "alice"))
	found, err := c.Usernames.Contains(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, found)
}
