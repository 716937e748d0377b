package cache_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/mmo-db-gateway/internal/cache"
	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
)

type TableTestSuite struct {
	suite.Suite
	ctx     context.Context
	backend *cache.MemoryBackend
	cache   *cache.Cache
}

func (s *TableTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.backend = cache.NewMemoryBackend()
	s.cache = cache.New(&cache.Config{Backend: s.backend})
}

func TestTableTestSuite(t *testing.T) {
	suite.Run(t, new(TableTestSuite))
}

func (s *TableTestSuite) TestGetMissing() {
	result, err := s.cache.Guilds.Get(s.ctx, 1)
	s.Require().NoError(err)
	s.False(result.HasValue())
	s.Nil(result.Value())
}

func (s *TableTestSuite) TestSetThenGet() {
	s.Require().NoError(s.cache.UserGold.Set(s.ctx, "user-1", 250))

	result, err := s.cache.UserGold.Get(s.ctx, "user-1")
	s.Require().NoError(err)
	gold, ok := result.Get()
	s.True(ok)
	s.Equal(250, gold)
}

func (s *TableTestSuite) TestValuesAreCopies() {
	guild := entities.NewGuild(7, "Foo", "char-1", []entities.GuildRole{{Name: "Master"}, {Name: "Member"}})
	s.Require().NoError(guild.AddMember(entities.SocialCharacter{ID: "char-1", Name: "Alice"}, 0))
	s.Require().NoError(s.cache.Guilds.Set(s.ctx, guild.ID, guild))

	// mutating the original after Set must not leak into the cache
	guild.Message = "changed"

	first, err := s.cache.Guilds.Get(s.ctx, 7)
	s.Require().NoError(err)
	s.Require().True(first.HasValue())
	s.Empty(first.Value().Message)

	// nor does mutating one reader's copy
	first.Value().Name = "Bar"
	second, err := s.cache.Guilds.Get(s.ctx, 7)
	s.Require().NoError(err)
	s.Equal("Foo", second.Value().Name)
	s.Equal("Alice", second.Value().Members["char-1"].Name)
}

func (s *TableTestSuite) TestSetManyAndRemove() {
	err := s.cache.SocialCharacters.SetMany(s.ctx, map[string]entities.SocialCharacter{
		"char-1": {ID: "char-1", Name: "Alice"},
		"char-2": {ID: "char-2", Name: "Bob"},
	})
	s.Require().NoError(err)
	s.Equal(2, s.backend.Len())

	s.Require().NoError(s.cache.SocialCharacters.Remove(s.ctx, "char-1", "char-3"))

	removed, err := s.cache.SocialCharacters.Get(s.ctx, "char-1")
	s.Require().NoError(err)
	s.False(removed.HasValue())

	kept, err := s.cache.SocialCharacters.Get(s.ctx, "char-2")
	s.Require().NoError(err)
	s.Equal("Bob", kept.Value().Name)
}

func (s *TableTestSuite) TestTablesDoNotShareKeys() {
	s.Require().NoError(s.cache.UserGold.Set(s.ctx, "user-1", 10))
	s.Require().NoError(s.cache.UserCash.Set(s.ctx, "user-1", 20))

	gold, err := s.cache.UserGold.Get(s.ctx, "user-1")
	s.Require().NoError(err)
	cash, err := s.cache.UserCash.Get(s.ctx, "user-1")
	s.Require().NoError(err)
	s.Equal(10, gold.Value())
	s.Equal(20, cash.Value())
}

func (s *TableTestSuite) TestStorageItemsKeyedByStorageID() {
	player := entities.NewStorageID(entities.StorageTypePlayer, "owner-1")
	guild := entities.NewStorageID(entities.StorageTypeGuild, "owner-1")
	items := []entities.CharacterItem{{ID: "item-1", DataID: 3, Amount: 2, Sockets: []int{1, 2}}}

	s.Require().NoError(s.cache.StorageItems.Set(s.ctx, player, items))

	found, err := s.cache.StorageItems.Get(s.ctx, player)
	s.Require().NoError(err)
	s.Equal(items, found.Value())

	other, err := s.cache.StorageItems.Get(s.ctx, guild)
	s.Require().NoError(err)
	s.False(other.HasValue())
}

func (s *TableTestSuite) TestDisabledCache() {
	disabled := cache.New(&cache.Config{Backend: s.backend, Disabled: true})
	s.False(disabled.Enabled())

	s.Require().NoError(disabled.UserGold.Set(s.ctx, "user-1", 99))
	s.Equal(0, s.backend.Len())

	// entries written by an enabled cache are ignored too
	s.Require().NoError(s.cache.UserGold.Set(s.ctx, "user-1", 5))
	result, err := disabled.UserGold.Get(s.ctx, "user-1")
	s.Require().NoError(err)
	s.False(result.HasValue())
}
