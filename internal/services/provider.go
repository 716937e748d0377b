package services

import (
	"github.com/hashicorp/go-hclog"

	"github.com/KirkDiggler/mmo-db-gateway/internal/cache"
	"github.com/KirkDiggler/mmo-db-gateway/internal/clock"
	"github.com/KirkDiggler/mmo-db-gateway/internal/config"
	"github.com/KirkDiggler/mmo-db-gateway/internal/replicator"
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
	accountService "github.com/KirkDiggler/mmo-db-gateway/internal/services/accounts"
	buildingService "github.com/KirkDiggler/mmo-db-gateway/internal/services/buildings"
	characterService "github.com/KirkDiggler/mmo-db-gateway/internal/services/characters"
	friendService "github.com/KirkDiggler/mmo-db-gateway/internal/services/friends"
	guildService "github.com/KirkDiggler/mmo-db-gateway/internal/services/guilds"
	mailService "github.com/KirkDiggler/mmo-db-gateway/internal/services/mail"
	partyService "github.com/KirkDiggler/mmo-db-gateway/internal/services/parties"
	storageService "github.com/KirkDiggler/mmo-db-gateway/internal/services/storages"
	"github.com/KirkDiggler/mmo-db-gateway/internal/uniqueness"
	"github.com/KirkDiggler/mmo-db-gateway/internal/uuid"
)

// Provider holds all service instances
type Provider struct {
	AccountService   accountService.Service
	CharacterService characterService.Service
	PartyService     partyService.Service
	GuildService     guildService.Service
	StorageService   storageService.Service
	BuildingService  buildingService.Service
	MailService      mailService.Service
	FriendService    friendService.Service

	Cache *cache.Cache
}

// ProviderConfig holds configuration for creating services. Every field is
// optional; repositories default to in-memory ones.
type ProviderConfig struct {
	AccountRepository      accounts.Repository
	CharacterRepository    characters.Repository
	PartyRepository        parties.Repository
	GuildRepository        guilds.Repository
	GuildRequestRepository guildrequests.Repository
	StorageRepository      storages.Repository
	BuildingRepository     buildings.Repository
	MailRepository         mail.Repository
	FriendRepository       friends.Repository

	Cache          *cache.Cache
	Reservations   *reservation.Manager
	SocialSettings *config.SocialSettings
	UUIDGenerator  uuid.Generator
	TimeProvider   clock.TimeProvider
	Logger         hclog.Logger
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	if cfg == nil {
		cfg = &ProviderConfig{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	accountRepo := cfg.AccountRepository
	if accountRepo == nil {
		accountRepo = accounts.NewInMemoryRepository()
	}
	charRepo := cfg.CharacterRepository
	if charRepo == nil {
		charRepo = characters.NewInMemoryRepository()
	}
	partyRepo := cfg.PartyRepository
	if partyRepo == nil {
		partyRepo = parties.NewInMemoryRepository()
	}
	guildRepo := cfg.GuildRepository
	if guildRepo == nil {
		guildRepo = guilds.NewInMemoryRepository()
	}
	storageRepo := cfg.StorageRepository
	if storageRepo == nil {
		storageRepo = storages.NewInMemoryRepository()
	}
	buildingRepo := cfg.BuildingRepository
	if buildingRepo == nil {
		buildingRepo = buildings.NewInMemoryRepository()
	}
	mailRepo := cfg.MailRepository
	if mailRepo == nil {
		mailRepo = mail.NewInMemoryRepository()
	}
	requestRepo := cfg.GuildRequestRepository
	if requestRepo == nil {
		requestRepo = guildrequests.NewInMemoryRepository()
	}
	friendRepo := cfg.FriendRepository
	if friendRepo == nil {
		friendRepo = friends.NewInMemoryRepository()
	}

	c := cfg.Cache
	if c == nil {
		c = cache.New(&cache.Config{Logger: logger.Named("cache")})
	}

	reservations := cfg.Reservations
	if reservations == nil {
		reservations = reservation.NewManager(&reservation.Config{
			TimeProvider: cfg.TimeProvider,
			Logger:       logger.Named("reservation"),
		})
	}

	guard := uniqueness.New(&uniqueness.Config{
		Cache: c,
		Lookups: uniqueness.Lookups{
			Username:      accountRepo.FindUsername,
			Email:         accountRepo.FindEmail,
			CharacterName: charRepo.FindName,
			GuildName:     guildRepo.FindName,
		},
		Logger: logger.Named("uniqueness"),
	})

	repl := replicator.New(&replicator.Config{
		Cache:  c,
		Logger: logger.Named("replicator"),
	})

	storageSvc := storageService.NewService(&storageService.ServiceConfig{
		Repository:   storageRepo,
		Cache:        c,
		Reservations: reservations,
		Logger:       logger.Named("storages"),
	})

	charSvc := characterService.NewService(&characterService.ServiceConfig{
		Repository:     charRepo,
		StorageService: storageSvc,
		Cache:          c,
		Guard:          guard,
		Replicator:     repl,
		Logger:         logger.Named("characters"),
	})

	partySvc := partyService.NewService(&partyService.ServiceConfig{
		Repository:          partyRepo,
		CharacterRepository: charRepo,
		CharacterService:    charSvc,
		Cache:               c,
		Replicator:          repl,
		Logger:              logger.Named("parties"),
	})

	guildSvc := guildService.NewService(&guildService.ServiceConfig{
		Repository:          guildRepo,
		CharacterRepository: charRepo,
		RequestRepository:   requestRepo,
		CharacterService:    charSvc,
		Cache:               c,
		Guard:               guard,
		Replicator:          repl,
		Settings:            cfg.SocialSettings,
		TimeProvider:        cfg.TimeProvider,
		Logger:              logger.Named("guilds"),
	})

	accountSvc := accountService.NewService(&accountService.ServiceConfig{
		Repository:       accountRepo,
		CharacterService: charSvc,
		Cache:            c,
		Guard:            guard,
		UUIDGenerator:    cfg.UUIDGenerator,
		Logger:           logger.Named("accounts"),
	})

	buildingSvc := buildingService.NewService(&buildingService.ServiceConfig{
		Repository:     buildingRepo,
		StorageService: storageSvc,
		Cache:          c,
		Logger:         logger.Named("buildings"),
	})

	mailSvc := mailService.NewService(&mailService.ServiceConfig{
		Repository:   mailRepo,
		TimeProvider: cfg.TimeProvider,
		Logger:       logger.Named("mail"),
	})

	friendSvc := friendService.NewService(&friendService.ServiceConfig{
		Repository:       friendRepo,
		CharacterService: charSvc,
		Logger:           logger.Named("friends"),
	})

	return &Provider{
		AccountService:   accountSvc,
		CharacterService: charSvc,
		PartyService:     partySvc,
		GuildService:     guildSvc,
		StorageService:   storageSvc,
		BuildingService:  buildingSvc,
		MailService:      mailSvc,
		FriendService:    friendSvc,
		Cache:            c,
	}
}
