package accounts

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/KirkDiggler/mmo-db-gateway/internal/cache"
	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
	accountRepo "github.com/KirkDiggler/mmo-db-gateway/internal/repositories/accounts"
	characterService "github.com/KirkDiggler/mmo-db-gateway/internal/services/characters"
	"github.com/KirkDiggler/mmo-db-gateway/internal/uniqueness"
	"github.com/KirkDiggler/mmo-db-gateway/internal/uuid"
)

// Repository is an alias for the account repository interface
type Repository = accountRepo.Repository

// Service defines the account service interface
type Service interface {
	// CreateUserLogin registers an account and returns the new user ID
	CreateUserLogin(ctx context.Context, input *CreateUserLoginInput) (string, error)

	// ValidateUserLogin checks credentials and returns the user ID
	ValidateUserLogin(ctx context.Context, username, password string) (string, error)

	// ValidateAccessToken reports whether token is the user's current token
	ValidateAccessToken(ctx context.Context, userID, token string) (bool, error)

	// UpdateAccessToken replaces the user's current token
	UpdateAccessToken(ctx context.Context, userID, token string) error

	GetGold(ctx context.Context, userID string) (int, error)
	ChangeGold(ctx context.Context, userID string, delta int) (int, error)
	GetCash(ctx context.Context, userID string) (int, error)
	ChangeCash(ctx context.Context, userID string, delta int) (int, error)

	FindUsername(ctx context.Context, username string) (bool, error)
	FindEmail(ctx context.Context, email string) (bool, error)

	// GetUserUnbanTime returns when the user's ban ends, in unix seconds
	GetUserUnbanTime(ctx context.Context, userID string) (int64, error)

	// SetUserUnbanTimeByCharacterName bans the owner of a character
	SetUserUnbanTimeByCharacterName(ctx context.Context, characterName string, unbanTime int64) error
}

// CreateUserLoginInput carries the details of a new account
type CreateUserLoginInput struct {
	Username string
	Password string
	Email    string
}

type service struct {
	repository       Repository
	characterService characterService.Service
	cache            *cache.Cache
	guard            *uniqueness.Guard
	uuidGenerator    uuid.Generator
	hasher           PasswordHasher
	logger           hclog.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository       Repository               // Required
	CharacterService characterService.Service // Required
	Cache            *cache.Cache             // Required
	Guard            *uniqueness.Guard        // Required
	UUIDGenerator    uuid.Generator           // Optional, defaults to random UUIDs
	Hasher           PasswordHasher           // Optional, defaults to bcrypt
	Logger           hclog.Logger
}

// NewService creates a new account service
func NewService(cfg *ServiceConfig) Service {
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.CharacterService == nil {
		panic("character service is required")
	}
	if cfg.Cache == nil {
		panic("cache is required")
	}
	if cfg.Guard == nil {
		panic("uniqueness guard is required")
	}

	svc := &service{
		repository:       cfg.Repository,
		characterService: cfg.CharacterService,
		cache:            cfg.Cache,
		guard:            cfg.Guard,
		uuidGenerator:    cfg.UUIDGenerator,
		hasher:           cfg.Hasher,
		logger:           cfg.Logger,
	}
	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewRandomGenerator()
	}
	if svc.hasher == nil {
		svc.hasher = NewBcryptHasher()
	}
	if svc.logger == nil {
		svc.logger = hclog.NewNullLogger()
	}
	return svc
}

// CreateUserLogin implements Service
func (s *service) CreateUserLogin(ctx context.Context, input *CreateUserLoginInput) (string, error) {
	if input == nil || strings.TrimSpace(input.Username) == "" || input.Password == "" {
		return "", dnderr.InvalidArgument("username and password are required")
	}

	release, err := s.guard.BeginCreate(ctx, uniqueness.KindUsername, input.Username)
	if err != nil {
		return "", err
	}
	defer release()

	if input.Email != "" {
		taken, err := s.guard.Exists(ctx, uniqueness.KindEmail, input.Email)
		if err != nil {
			return "", err
		}
		if taken {
			return "", dnderr.Conflictf("email %q already exists", input.Email).
				WithReason(dnderr.ReasonNameInUse).
				WithMeta("email", input.Email)
		}
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return "", dnderr.WrapWithCode(err, dnderr.CodeInternal, "failed to hash password")
	}

	account := &entities.UserAccount{
		ID:           s.uuidGenerator.New(),
		Username:     input.Username,
		PasswordHash: hash,
		Email:        input.Email,
	}
	if err := s.repository.Create(ctx, account); err != nil {
		if dnderr.Is(err, dnderr.CodeAlreadyExists) {
			return "", dnderr.WrapWithCode(err, dnderr.CodeConflict, "username or email is taken").
				WithReason(dnderr.ReasonNameInUse)
		}
		return "", dnderr.WrapStore(err, "failed to create account")
	}

	s.guard.Record(ctx, uniqueness.KindUsername, account.Username)
	if account.Email != "" {
		s.guard.Record(ctx, uniqueness.KindEmail, account.Email)
	}
	return account.ID, nil
}

// ValidateUserLogin implements Service
func (s *service) ValidateUserLogin(ctx context.Context, username, password string) (string, error) {
	account, err := s.repository.GetByUsername(ctx, username)
	if dnderr.IsNotFound(err) {
		return "", invalidCredentials()
	}
	if err != nil {
		return "", dnderr.WrapStore(err, "failed to validate login")
	}
	if !s.hasher.Compare(account.PasswordHash, password) {
		return "", invalidCredentials()
	}
	return account.ID, nil
}

func invalidCredentials() error {
	return dnderr.Unauthorized("invalid username or password").
		WithReason(dnderr.ReasonInvalidCredentials)
}

// ValidateAccessToken implements Service
func (s *service) ValidateAccessToken(ctx context.Context, userID, token string) (bool, error) {
	if userID == "" || token == "" {
		return false, nil
	}

	cached, err := s.cache.UserAccessToken.Get(ctx, userID)
	if err != nil {
		s.logger.Warn("access token cache read failed", "user_id", userID, "error", err)
	} else if current, ok := cached.Get(); ok && current == token {
		return true, nil
	}

	account, err := s.repository.Get(ctx, userID)
	if dnderr.IsNotFound(err) {
		return false, nil
	}
	if err != nil {
		return false, dnderr.WrapStore(err, "failed to validate access token")
	}
	if account.AccessToken != token {
		return false, nil
	}
	s.cache.UserAccessToken.Store(ctx, userID, token)
	return true, nil
}

// UpdateAccessToken implements Service
func (s *service) UpdateAccessToken(ctx context.Context, userID, token string) error {
	if userID == "" {
		return dnderr.InvalidArgument("user ID is required")
	}
	if err := s.repository.UpdateAccessToken(ctx, userID, token); err != nil {
		return dnderr.WrapStore(err, "failed to update access token")
	}
	s.cache.UserAccessToken.Store(ctx, userID, token)
	return nil
}

// GetGold implements Service
func (s *service) GetGold(ctx context.Context, userID string) (int, error) {
	return s.balance(ctx, s.cache.UserGold, userID, s.repository.GetGold)
}

// ChangeGold implements Service
func (s *service) ChangeGold(ctx context.Context, userID string, delta int) (int, error) {
	return s.change(ctx, s.cache.UserGold, userID, delta, s.repository.ChangeGold)
}

// GetCash implements Service
func (s *service) GetCash(ctx context.Context, userID string) (int, error) {
	return s.balance(ctx, s.cache.UserCash, userID, s.repository.GetCash)
}

// ChangeCash implements Service
func (s *service) ChangeCash(ctx context.Context, userID string, delta int) (int, error) {
	return s.change(ctx, s.cache.UserCash, userID, delta, s.repository.ChangeCash)
}

func (s *service) balance(ctx context.Context, table *cache.Table[string, int], userID string, read func(context.Context, string) (int, error)) (int, error) {
	if userID == "" {
		return 0, dnderr.InvalidArgument("user ID is required")
	}
	result, err := cache.GetOrLoad(ctx, table, userID, func(ctx context.Context) (cache.Result[int], error) {
		amount, err := read(ctx, userID)
		if err != nil {
			return cache.Missing[int](), err
		}
		return cache.Found(amount), nil
	})
	if err != nil {
		return 0, dnderr.WrapStore(err, fmt.Sprintf("failed to read %s of %s", table.Name(), userID))
	}
	return result.Value(), nil
}

func (s *service) change(ctx context.Context, table *cache.Table[string, int], userID string, delta int, write func(context.Context, string, int) (int, error)) (int, error) {
	if userID == "" {
		return 0, dnderr.InvalidArgument("user ID is required")
	}
	amount, err := write(ctx, userID, delta)
	if err != nil {
		return 0, dnderr.WrapStore(err, fmt.Sprintf("failed to change %s of %s", table.Name(), userID))
	}
	table.Store(ctx, userID, amount)
	return amount, nil
}

// FindUsername implements Service
func (s *service) FindUsername(ctx context.Context, username string) (bool, error) {
	if strings.TrimSpace(username) == "" {
		return false, dnderr.InvalidArgument("username is required")
	}
	return s.guard.Exists(ctx, uniqueness.KindUsername, username)
}

// FindEmail implements Service
func (s *service) FindEmail(ctx context.Context, email string) (bool, error) {
	if strings.TrimSpace(email) == "" {
		return false, dnderr.InvalidArgument("email is required")
	}
	return s.guard.Exists(ctx, uniqueness.KindEmail, email)
}

// GetUserUnbanTime implements Service
func (s *service) GetUserUnbanTime(ctx context.Context, userID string) (int64, error) {
	account, err := s.repository.Get(ctx, userID)
	if err != nil {
		return 0, dnderr.WrapStore(err, fmt.Sprintf("failed to get user %s", userID))
	}
	return account.UnbanTime, nil
}

// SetUserUnbanTimeByCharacterName implements Service
func (s *service) SetUserUnbanTimeByCharacterName(ctx context.Context, characterName string, unbanTime int64) error {
	userID, err := s.characterService.GetUserIDByCharacterName(ctx, characterName)
	if err != nil {
		return err
	}
	if err := s.repository.SetUnbanTime(ctx, userID, unbanTime); err != nil {
		return dnderr.WrapStore(err, fmt.Sprintf("failed to set unban time of %s", userID))
	}
	s.logger.Info("user ban updated", "user_id", userID, "character_name", characterName, "unban_time", unbanTime)
	return nil
}
