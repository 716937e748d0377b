package mail

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories"
)

// InMemoryRepository is an in-memory implementation of the mail repository
type InMemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	mails  map[int64]*entities.Mail
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		mails: make(map[int64]*entities.Mail),
	}
}

// Create stores a new mail
func (r *InMemoryRepository) Create(_ context.Context, mail *entities.Mail) (int64, error) {
	if mail == nil || mail.ReceiverID == "" {
		return 0, dnderr.InvalidArgument("mail receiver is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	stored := *mail
	stored.ID = r.nextID
	stored.Items = entities.CloneItems(mail.Items)
	r.mails[stored.ID] = &stored
	return stored.ID, nil
}

// List returns a user's mails, newest first
func (r *InMemoryRepository) List(_ context.Context, userID string, onlyNew bool) ([]*entities.Mail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []*entities.Mail
	for _, m := range r.mails {
		if Visible(m, userID, onlyNew) {
			mailCopy := *m
			list = append(list, &mailCopy)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

// Get retrieves a mail by ID
func (r *InMemoryRepository) Get(_ context.Context, id int64) (*entities.Mail, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.mails[id]
	if !ok {
		return nil, repositories.NewRecordNotFoundError("mail", id)
	}
	mailCopy := *m
	mailCopy.Items = entities.CloneItems(m.Items)
	return &mailCopy, nil
}

// UpdateRead marks a mail read
func (r *InMemoryRepository) UpdateRead(_ context.Context, id int64, userID string, at int64) (int64, error) {
	return r.update(id, func(m *entities.Mail) bool {
		if !CanRead(m, userID) {
			return false
		}
		m.IsRead = true
		m.ReadTime = at
		return true
	}), nil
}

// UpdateClaim marks a mail's attachments claimed
func (r *InMemoryRepository) UpdateClaim(_ context.Context, id int64, userID string, at int64) (int64, error) {
	return r.update(id, func(m *entities.Mail) bool {
		if !CanClaim(m, userID) {
			return false
		}
		m.IsClaim = true
		m.ClaimTime = at
		return true
	}), nil
}

// UpdateDelete marks a mail deleted
func (r *InMemoryRepository) UpdateDelete(_ context.Context, id int64, userID string, at int64) (int64, error) {
	return r.update(id, func(m *entities.Mail) bool {
		if !CanDelete(m, userID) {
			return false
		}
		m.IsDelete = true
		m.DeleteTime = at
		return true
	}), nil
}

// CountUnread counts a user's unread mails
func (r *InMemoryRepository) CountUnread(ctx context.Context, userID string) (int, error) {
	list, err := r.List(ctx, userID, true)
	return len(list), err
}

func (r *InMemoryRepository) update(id int64, fn func(*entities.Mail) bool) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.mails[id]
	if !ok || !fn(m) {
		return 0
	}
	return 1
}
