package accounts

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories"
)

const (
	fieldGold = "gold"
	fieldCash = "cash"
)

// AccountData is the serialized form of an account in Redis. Balances live
// in a separate hash so they can be changed atomically.
type AccountData struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_hash"`
	Email        string `json:"email"`
	AccessToken  string `json:"access_token"`
	UnbanTime    int64  `json:"unban_time"`
}

type redisRepo struct {
	client redis.UniversalClient
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed account repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}
	return &redisRepo{client: cfg.Client}
}

func (r *redisRepo) key(userID string) string {
	return fmt.Sprintf("account:%s", userID)
}

func (r *redisRepo) walletKey(userID string) string {
	return fmt.Sprintf("account:%s:wallet", userID)
}

func (r *redisRepo) usernameKey(username string) string {
	return fmt.Sprintf("account:username:%s", strings.ToLower(username))
}

func (r *redisRepo) emailKey(email string) string {
	return fmt.Sprintf("account:email:%s", strings.ToLower(email))
}

// Create stores a new account
func (r *redisRepo) Create(ctx context.Context, account *entities.UserAccount) error {
	if account == nil {
		return dnderr.InvalidArgument("account cannot be nil")
	}
	if account.ID == "" || account.Username == "" {
		return dnderr.InvalidArgument("account ID and username are required")
	}

	claimed, err := r.client.SetNX(ctx, r.usernameKey(account.Username), account.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to claim username: %w", err)
	}
	if !claimed {
		return dnderr.AlreadyExistsf("username '%s' already exists", account.Username).
			WithMeta("username", account.Username)
	}

	data, err := json.Marshal(toAccountData(account))
	if err != nil {
		return fmt.Errorf("failed to marshal account: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(account.ID), data, 0)
	pipe.HSet(ctx, r.walletKey(account.ID), fieldGold, account.Gold, fieldCash, account.Cash)
	if account.Email != "" {
		pipe.Set(ctx, r.emailKey(account.Email), account.ID, 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// Get retrieves an account by user ID
func (r *redisRepo) Get(ctx context.Context, userID string) (*entities.UserAccount, error) {
	if userID == "" {
		return nil, dnderr.InvalidArgument("user ID is required")
	}

	raw, err := r.client.Get(ctx, r.key(userID)).Result()
	if repositories.IsRedisNil(err) {
		return nil, repositories.NewRecordNotFoundError("user", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	var data AccountData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal account: %w", err)
	}

	account := fromAccountData(&data)
	if account.Gold, err = r.balance(ctx, userID, fieldGold); err != nil {
		return nil, err
	}
	if account.Cash, err = r.balance(ctx, userID, fieldCash); err != nil {
		return nil, err
	}
	return account, nil
}

// GetByUsername retrieves an account by login name
func (r *redisRepo) GetByUsername(ctx context.Context, username string) (*entities.UserAccount, error) {
	userID, err := r.client.Get(ctx, r.usernameKey(username)).Result()
	if repositories.IsRedisNil(err) {
		return nil, repositories.NewRecordNotFoundError("username", username)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up username: %w", err)
	}
	return r.Get(ctx, userID)
}

// FindUsername reports whether a username is taken
func (r *redisRepo) FindUsername(ctx context.Context, username string) (bool, error) {
	n, err := r.client.Exists(ctx, r.usernameKey(username)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return n > 0, nil
}

// FindEmail reports whether an email is taken
func (r *redisRepo) FindEmail(ctx context.Context, email string) (bool, error) {
	n, err := r.client.Exists(ctx, r.emailKey(email)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return n > 0, nil
}

// UpdateAccessToken replaces the current access token
func (r *redisRepo) UpdateAccessToken(ctx context.Context, userID, token string) error {
	return r.update(ctx, userID, func(data *AccountData) {
		data.AccessToken = token
	})
}

// SetUnbanTime sets when a ban ends
func (r *redisRepo) SetUnbanTime(ctx context.Context, userID string, unbanTime int64) error {
	return r.update(ctx, userID, func(data *AccountData) {
		data.UnbanTime = unbanTime
	})
}

// GetGold returns the gold balance
func (r *redisRepo) GetGold(ctx context.Context, userID string) (int, error) {
	if err := r.ensureExists(ctx, userID); err != nil {
		return 0, err
	}
	return r.balance(ctx, userID, fieldGold)
}

// ChangeGold adds delta to the gold balance
func (r *redisRepo) ChangeGold(ctx context.Context, userID string, delta int) (int, error) {
	return r.change(ctx, userID, fieldGold, delta)
}

// GetCash returns the cash balance
func (r *redisRepo) GetCash(ctx context.Context, userID string) (int, error) {
	if err := r.ensureExists(ctx, userID); err != nil {
		return 0, err
	}
	return r.balance(ctx, userID, fieldCash)
}

// ChangeCash adds delta to the cash balance
func (r *redisRepo) ChangeCash(ctx context.Context, userID string, delta int) (int, error) {
	return r.change(ctx, userID, fieldCash, delta)
}

func (r *redisRepo) balance(ctx context.Context, userID, field string) (int, error) {
	value, err := r.client.HGet(ctx, r.walletKey(userID), field).Int()
	if repositories.IsRedisNil(err) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", field, err)
	}
	return value, nil
}

func (r *redisRepo) change(ctx context.Context, userID, field string, delta int) (int, error) {
	if err := r.ensureExists(ctx, userID); err != nil {
		return 0, err
	}
	value, err := r.client.HIncrBy(ctx, r.walletKey(userID), field, int64(delta)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to change %s: %w", field, err)
	}
	return int(value), nil
}

func (r *redisRepo) ensureExists(ctx context.Context, userID string) error {
	if userID == "" {
		return dnderr.InvalidArgument("user ID is required")
	}
	n, err := r.client.Exists(ctx, r.key(userID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check account existence: %w", err)
	}
	if n == 0 {
		return repositories.NewRecordNotFoundError("user", userID)
	}
	return nil
}

func (r *redisRepo) update(ctx context.Context, userID string, mutate func(*AccountData)) error {
	if userID == "" {
		return dnderr.InvalidArgument("user ID is required")
	}

	raw, err := r.client.Get(ctx, r.key(userID)).Result()
	if repositories.IsRedisNil(err) {
		return repositories.NewRecordNotFoundError("user", userID)
	}
	if err != nil {
		return fmt.Errorf("failed to get account: %w", err)
	}

	var data AccountData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return fmt.Errorf("failed to unmarshal account: %w", err)
	}
	mutate(&data)

	encoded, err := json.Marshal(&data)
	if err != nil {
		return fmt.Errorf("failed to marshal account: %w", err)
	}
	if err := r.client.Set(ctx, r.key(userID), encoded, 0).Err(); err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return nil
}

func toAccountData(a *entities.UserAccount) *AccountData {
	return &AccountData{
		ID:           a.ID,
		Username:     a.Username,
		PasswordHash: a.PasswordHash,
		Email:        a.Email,
		AccessToken:  a.AccessToken,
		UnbanTime:    a.UnbanTime,
	}
}

func fromAccountData(d *AccountData) *entities.UserAccount {
	return &entities.UserAccount{
		ID:           d.ID,
		Username:     d.Username,
		PasswordHash: d.PasswordHash,
		Email:        d.Email,
		AccessToken:  d.AccessToken,
		UnbanTime:    d.UnbanTime,
	}
}
