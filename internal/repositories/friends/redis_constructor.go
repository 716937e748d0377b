package friends

import (
	"github.com/redis/go-redis/v9"
)

// NewRedis creates a new Redis-backed friend repository
func NewRedis(client redis.UniversalClient) Repository {
	return NewRedisRepository(&RedisRepoConfig{
		Client: client,
	})
}
