package cache

import (
	"strconv"

	"github.com/hashicorp/go-hclog"

	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
)

// Config holds configuration for the cache
type Config struct {
	Backend  Backend      // Optional, defaults to an in-process MemoryBackend
	Disabled bool         // Every read misses and every write is skipped
	Logger   hclog.Logger // Optional
}

// Cache owns every cache table of the gateway. It is built once by the
// composition root and shared by all services.
type Cache struct {
	backend Backend
	enabled bool
	logger  hclog.Logger

	UserGold         *Table[string, int]
	UserCash         *Table[string, int]
	UserAccessToken  *Table[string, string]
	PlayerCharacters *Table[string, *entities.PlayerCharacter]
	SocialCharacters *Table[string, entities.SocialCharacter]
	Parties          *Table[int, *entities.Party]
	Guilds           *Table[int, *entities.Guild]
	StorageItems     *Table[entities.StorageID, []entities.CharacterItem]
	Buildings        *Table[entities.BuildingLocation, []entities.Building]

	Usernames      *NameSet
	Emails         *NameSet
	CharacterNames *NameSet
	GuildNames     *NameSet
}

// New creates the cache and its tables
func New(cfg *Config) *Cache {
	if cfg == nil {
		cfg = &Config{}
	}

	c := &Cache{
		backend: cfg.Backend,
		enabled: !cfg.Disabled,
		logger:  cfg.Logger,
	}
	if c.backend == nil {
		c.backend = NewMemoryBackend()
	}
	if c.logger == nil {
		c.logger = hclog.NewNullLogger()
	}

	c.UserGold = newTable[string, int](c, "gold", identity)
	c.UserCash = newTable[string, int](c, "cash", identity)
	c.UserAccessToken = newTable[string, string](c, "access_token", identity)
	c.PlayerCharacters = newTable[string, *entities.PlayerCharacter](c, "character", identity)
	c.SocialCharacters = newTable[string, entities.SocialCharacter](c, "social_character", identity)
	c.Parties = newTable[int, *entities.Party](c, "party", strconv.Itoa)
	c.Guilds = newTable[int, *entities.Guild](c, "guild", strconv.Itoa)
	c.StorageItems = newTable[entities.StorageID, []entities.CharacterItem](c, "storage_items", entities.StorageID.String)
	c.Buildings = newTable[entities.BuildingLocation, []entities.Building](c, "buildings", buildingLocationKey)

	c.Usernames = newNameSet(c, "username")
	c.Emails = newNameSet(c, "email")
	c.CharacterNames = newNameSet(c, "character")
	c.GuildNames = newNameSet(c, "guild")

	return c
}

// Enabled reports whether caching is switched on for this deployment
func (c *Cache) Enabled() bool {
	return c.enabled
}

func identity(s string) string {
	return s
}

func buildingLocationKey(loc entities.BuildingLocation) string {
	return loc.Channel + ":" + loc.MapName
}
