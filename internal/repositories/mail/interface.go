package mail

//go:generate mockgen -destination=mock/mock.go -package=mockmail -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
)

// Repository defines the interface for mail persistence. The Update*
// methods only touch mail addressed to userID that has not been deleted,
// and report how many mails changed.
type Repository interface {
	// Create stores a new mail and returns its ID
	Create(ctx context.Context, mail *entities.Mail) (int64, error)

	// List returns a user's mails, newest first
	List(ctx context.Context, userID string, onlyNew bool) ([]*entities.Mail, error)

	// Get retrieves a mail by ID
	Get(ctx context.Context, id int64) (*entities.Mail, error)

	// UpdateRead marks a mail read at the given unix time
	UpdateRead(ctx context.Context, id int64, userID string, at int64) (int64, error)

	// UpdateClaim marks a mail's attachments claimed at the given unix time
	UpdateClaim(ctx context.Context, id int64, userID string, at int64) (int64, error)

	// UpdateDelete marks a mail deleted at the given unix time
	UpdateDelete(ctx context.Context, id int64, userID string, at int64) (int64, error)

	// CountUnread counts a user's unread mails
	CountUnread(ctx context.Context, userID string) (int, error)
}

// CanRead reports whether the mail can be marked read
func CanRead(m *entities.Mail, userID string) bool {
	return m.ReceiverID == userID && !m.IsDelete
}

// CanClaim reports whether the mail's attachments can be claimed
func CanClaim(m *entities.Mail, userID string) bool {
	return m.ReceiverID == userID && !m.IsDelete && !m.IsClaim
}

// CanDelete reports whether the mail can be deleted. Unclaimed attachments
// keep a mail from being deleted.
func CanDelete(m *entities.Mail, userID string) bool {
	if m.ReceiverID != userID || m.IsDelete {
		return false
	}
	hasAttachments := m.Gold > 0 || m.Cash > 0 || len(m.Items) > 0
	return !hasAttachments || m.IsClaim
}

// Visible reports whether the mail shows in a user's list
func Visible(m *entities.Mail, userID string, onlyNew bool) bool {
	if m.ReceiverID != userID || m.IsDelete {
		return false
	}
	return !onlyNew || !m.IsRead
}
