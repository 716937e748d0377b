package repositories

import (
	"errors"

	"github.com/redis/go-redis/v9"

	dnderr "github.com/KirkDiggler/mmo-db-gateway/internal/errors"
)

// NewRecordNotFoundError reports a missing record of the given kind
func NewRecordNotFoundError(kind string, id any) error {
	return dnderr.NotFoundf("%s %v not found", kind, id).
		WithMeta("kind", kind).
		WithMeta("id", id)
}

// IsRedisNil reports whether err is the client's missing-key reply
func IsRedisNil(err error) bool {
	return errors.Is(err, redis.Nil)
}
