package accounts

import (
	"context"
	"strings"
	"sync"

	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories"
)

// InMemoryRepository is an in-memory implementation of the account repository
// Useful for testing and development
type InMemoryRepository struct {
	mu         sync.RWMutex
	accounts   map[string]*entities.UserAccount
	byUsername map[string]string
	byEmail    map[string]string
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		accounts:   make(map[string]*entities.UserAccount),
		byUsername: make(map[string]string),
		byEmail:    make(map[string]string),
	}
}

// Create stores a new account
func (r *InMemoryRepository) Create(_ context.Context, account *entities.UserAccount) error {
	if account == nil {
		return dnderr.InvalidArgument("account cannot be nil")
	}
	if account.ID == "" || account.Username == "" {
		return dnderr.InvalidArgument("account ID and username are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.ToLower(account.Username)
	if _, taken := r.byUsername[name]; taken {
		return dnderr.AlreadyExistsf("username '%s' already exists", account.Username).
			WithMeta("username", account.Username)
	}

	accountCopy := *account
	r.accounts[account.ID] = &accountCopy
	r.byUsername[name] = account.ID
	if account.Email != "" {
		r.byEmail[strings.ToLower(account.Email)] = account.ID
	}
	return nil
}

// Get retrieves an account by user ID
func (r *InMemoryRepository) Get(_ context.Context, userID string) (*entities.UserAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[userID]
	if !ok {
		return nil, repositories.NewRecordNotFoundError("user", userID)
	}
	accountCopy := *account
	return &accountCopy, nil
}

// GetByUsername retrieves an account by login name
func (r *InMemoryRepository) GetByUsername(ctx context.Context, username string) (*entities.UserAccount, error) {
	r.mu.RLock()
	userID, ok := r.byUsername[strings.ToLower(username)]
	r.mu.RUnlock()

	if !ok {
		return nil, repositories.NewRecordNotFoundError("username", username)
	}
	return r.Get(ctx, userID)
}

// FindUsername reports whether a username is taken
func (r *InMemoryRepository) FindUsername(_ context.Context, username string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byUsername[strings.ToLower(username)]
	return ok, nil
}

// FindEmail reports whether an email is taken
func (r *InMemoryRepository) FindEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.byEmail[strings.ToLower(email)]
	return ok, nil
}

// UpdateAccessToken replaces the current access token
func (r *InMemoryRepository) UpdateAccessToken(_ context.Context, userID, token string) error {
	return r.mutate(userID, func(a *entities.UserAccount) {
		a.AccessToken = token
	})
}

// SetUnbanTime sets when a ban ends
func (r *InMemoryRepository) SetUnbanTime(_ context.Context, userID string, unbanTime int64) error {
	return r.mutate(userID, func(a *entities.UserAccount) {
		a.UnbanTime = unbanTime
	})
}

// GetGold returns the gold balance
func (r *InMemoryRepository) GetGold(ctx context.Context, userID string) (int, error) {
	account, err := r.Get(ctx, userID)
	if err != nil {
		return 0, err
	}
	return account.Gold, nil
}

// ChangeGold adds delta to the gold balance
func (r *InMemoryRepository) ChangeGold(_ context.Context, userID string, delta int) (int, error) {
	var balance int
	err := r.mutate(userID, func(a *entities.UserAccount) {
		a.Gold += delta
		balance = a.Gold
	})
	return balance, err
}

// GetCash returns the cash balance
func (r *InMemoryRepository) GetCash(ctx context.Context, userID string) (int, error) {
	account, err := r.Get(ctx, userID)
	if err != nil {
		return 0, err
	}
	return account.Cash, nil
}

// ChangeCash adds delta to the cash balance
func (r *InMemoryRepository) ChangeCash(_ context.Context, userID string, delta int) (int, error) {
	var balance int
	err := r.mutate(userID, func(a *entities.UserAccount) {
		a.Cash += delta
		balance = a.Cash
	})
	return balance, err
}

func (r *InMemoryRepository) mutate(userID string, fn func(*entities.UserAccount)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[userID]
	if !ok {
		return repositories.NewRecordNotFoundError("user", userID)
	}
	fn(account)
	return nil
}
