package common

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache abstracts the redis-backed store so repositories do not depend
// on a concrete client.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Client() *redis.Client
}
