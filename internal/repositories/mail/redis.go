package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/mmo-db-gateway/internal/entities"
	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
	"github.com/KirkDiggler/mmo-db-gateway/internal/repositories"
)

const nextIDKey = "mail:next_id"

type redisRepo struct {
	client redis.UniversalClient
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed mail repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}
	return &redisRepo{client: cfg.Client}
}

func (r *redisRepo) key(id int64) string {
	return fmt.Sprintf("mail:%d", id)
}

// inboxKey is a user's mail ids scored by id
func (r *redisRepo) inboxKey(userID string) string {
	return fmt.Sprintf("user:%s:mails", userID)
}

// Create stores a new mail
func (r *redisRepo) Create(ctx context.Context, mail *entities.Mail) (int64, error) {
	if mail == nil || mail.ReceiverID == "" {
		return 0, dnderr.InvalidArgument("mail receiver is required")
	}

	id, err := r.client.Incr(ctx, nextIDKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate mail ID: %w", err)
	}

	stored := *mail
	stored.ID = id
	encoded, err := json.Marshal(&stored)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal mail: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.key(id), encoded, 0)
	pipe.ZAdd(ctx, r.inboxKey(mail.ReceiverID), redis.Z{Score: float64(id), Member: strconv.FormatInt(id, 10)})
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to create mail: %w", err)
	}
	return id, nil
}

// List returns a user's mails, newest first
func (r *redisRepo) List(ctx context.Context, userID string, onlyNew bool) ([]*entities.Mail, error) {
	ids, err := r.client.ZRevRange(ctx, r.inboxKey(userID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list mail IDs: %w", err)
	}

	list := make([]*entities.Mail, 0, len(ids))
	for _, raw := range ids {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		mail, err := r.Get(ctx, id)
		if dnderr.IsNotFound(err) {
			continue
		}
		if err != nil {
			return nil, err
		}
		if Visible(mail, userID, onlyNew) {
			list = append(list, mail)
		}
	}
	return list, nil
}

// Get retrieves a mail by ID
func (r *redisRepo) Get(ctx context.Context, id int64) (*entities.Mail, error) {
	raw, err := r.client.Get(ctx, r.key(id)).Result()
	if repositories.IsRedisNil(err) {
		return nil, repositories.NewRecordNotFoundError("mail", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mail: %w", err)
	}

	var mail entities.Mail
	if err := json.Unmarshal([]byte(raw), &mail); err != nil {
		return nil, fmt.Errorf("failed to unmarshal mail: %w", err)
	}
	return &mail, nil
}

// UpdateRead marks a mail read
func (r *redisRepo) UpdateRead(ctx context.Context, id int64, userID string, at int64) (int64, error) {
	return r.update(ctx, id, func(m *entities.Mail) bool {
		if !CanRead(m, userID) {
			return false
		}
		m.IsRead = true
		m.ReadTime = at
		return true
	})
}

// UpdateClaim marks a mail's attachments claimed
func (r *redisRepo) UpdateClaim(ctx context.Context, id int64, userID string, at int64) (int64, error) {
	return r.update(ctx, id, func(m *entities.Mail) bool {
		if !CanClaim(m, userID) {
			return false
		}
		m.IsClaim = true
		m.ClaimTime = at
		return true
	})
}

// UpdateDelete marks a mail deleted
func (r *redisRepo) UpdateDelete(ctx context.Context, id int64, userID string, at int64) (int64, error) {
	return r.update(ctx, id, func(m *entities.Mail) bool {
		if !CanDelete(m, userID) {
			return false
		}
		m.IsDelete = true
		m.DeleteTime = at
		return true
	})
}

// CountUnread counts a user's unread mails
func (r *redisRepo) CountUnread(ctx context.Context, userID string) (int, error) {
	unread, err := r.List(ctx, userID, true)
	if err != nil {
		return 0, err
	}
	return len(unread), nil
}

// update applies fn to a mail under WATCH so two updates of the same mail
// cannot both apply
func (r *redisRepo) update(ctx context.Context, id int64, fn func(*entities.Mail) bool) (int64, error) {
	var updated int64
	key := r.key(id)

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Result()
		if repositories.IsRedisNil(err) {
			return nil
		}
		if err != nil {
			return err
		}

		var mail entities.Mail
		if err := json.Unmarshal([]byte(raw), &mail); err != nil {
			return err
		}
		if !fn(&mail) {
			return nil
		}

		encoded, err := json.Marshal(&mail)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, encoded, 0)
			return nil
		})
		if err == nil {
			updated = 1
		}
		return err
	}, key)
	if err != nil {
		return 0, fmt.Errorf("failed to update mail: %w", err)
	}
	return updated, nil
}
