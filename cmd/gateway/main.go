package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/mmo-db-gateway/internal/cache"
	"github.com/KirkDiggler/mmo-db-gateway/internal/config"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories/accounts"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories/buildings"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories/characters"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories/friends"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories/guildrequests"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories/guilds"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories/mail"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories/parties"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories/storages"
	"github.com/KirkDiggler/mmo-db-gateway/internal/reservation"
	"github.com/KirkDiggler/mmo-db-gateway/internal/services"
)

func main() {
	envLoaded := godotenv.Load() == nil

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := cfg.NewLogger("gateway")
	if envLoaded {
		logger.Debug("loaded .env file")
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("gateway stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger hclog.Logger) error {
	settings, err := config.LoadSocialSettings(cfg.SocialSettingsPath, logger.Named("config"))
	if err != nil {
		return fmt.Errorf("failed to load social settings: %w", err)
	}

	providerConfig := &services.ProviderConfig{
		SocialSettings: settings,
		Logger:         logger,
	}

	var clients []*redis.Client
	defer func() {
		for _, c := range clients {
			if err := c.Close(); err != nil {
				logger.Warn("error closing Redis connection", "error", err)
			}
		}
	}()

	if cfg.Redis.URL != "" {
		client, err := connect(cfg.Redis.URL)
		if err != nil {
			return fmt.Errorf("failed to connect to store Redis: %w", err)
		}
		clients = append(clients, client)

		providerConfig.AccountRepository = accounts.NewRedis(client)
		providerConfig.CharacterRepository = characters.NewRedis(client)
		providerConfig.PartyRepository = parties.NewRedis(client)
		providerConfig.GuildRepository = guilds.NewRedis(client)
		providerConfig.GuildRequestRepository = guildrequests.NewRedis(client)
		providerConfig.FriendRepository = friends.NewRedis(client)
		providerConfig.StorageRepository = storages.NewRedis(client)
		providerConfig.BuildingRepository = buildings.NewRedis(client)
		providerConfig.MailRepository = mail.NewRedis(client)
		logger.Info("using Redis for persistence")
	} else {
		logger.Warn("no REDIS_URL set, using in-memory repositories")
	}

	cacheConfig := &cache.Config{
		Disabled: cfg.Cache.Disabled,
		Logger:   logger.Named("cache"),
	}
	if cfg.Cache.Backend == config.CacheBackendRedis && !cfg.Cache.Disabled {
		client, err := connect(cfg.CacheRedisURL())
		if err != nil {
			return fmt.Errorf("failed to connect to cache Redis: %w", err)
		}
		clients = append(clients, client)
		cacheConfig.Backend = cache.NewRedisBackend(&cache.RedisBackendConfig{Client: client})
	}
	providerConfig.Cache = cache.New(cacheConfig)
	providerConfig.Reservations = reservation.NewManager(&reservation.Config{
		Window: cfg.Reservation.Window,
		Logger: logger.Named("reservation"),
	})

	provider := services.NewProvider(providerConfig)

	// Markers left by a previous process would block guild storages forever
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = provider.StorageService.DeleteAllReservedStorage(ctx)
	cancel()
	if err != nil {
		return fmt.Errorf("failed to clear storage reservations: %w", err)
	}

	logger.Info("gateway ready",
		"cache_disabled", cfg.Cache.Disabled,
		"cache_backend", cfg.Cache.Backend,
		"reservation_window", cfg.Reservation.Window,
	)

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sc
	logger.Info("shutting down", "signal", sig.String())
	return nil
}

func connect(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid Redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
