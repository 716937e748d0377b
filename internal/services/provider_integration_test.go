//go:build integration

package services_test

import (
	"testing"

	"github.com/KirkDiggler/mmo-db-gateway/internal/cache"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories/accounts"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories/buildings"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories/characters"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories/guilds"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories/mail"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories/parties"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories/storages"
	"github.com/KirkDiggler/mmo-db-gateway/internal/services"
	"github.com/KirkDiggler/mmo-db-gateway/internal/testutils"
)

func TestProviderRedis(t *testing.T) {
	client := testutils.StartRedisContainer(t)

	exerciseProvider(t, services.NewProvider(&services.ProviderConfig{
		AccountRepository:   accounts.NewRedis(client),
		CharacterRepository: characters.NewRedis(client),
		PartyRepository:     parties.NewRedis(client),
		GuildRepository:     guilds.NewRedis(client),
		StorageRepository:   storages.NewRedis(client),
		BuildingRepository:  buildings.NewRedis(client),
		MailRepository:      mail.NewRedis(client),
		Cache: cache.New(&cache.Config{
			Backend: cache.NewRedisBackend(&cache.RedisBackendConfig{Client: client}),
		}),
	}))
}
