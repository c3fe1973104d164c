package repository

import (
	"context"
	"time"
)

// ICache defines the key-value store operations the core depends on.
// Backed by Redis in production; hash semantics plus a blocking list queue.
type ICache interface {
	HashSet(ctx context.Context, key string, fields map[string]interface{}) error
	HashGetAll(ctx context.Context, key string) (map[string]string, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	PushQueue(ctx context.Context, queue string, payload []byte) error
	PopQueue(ctx context.Context, queue string, timeout time.Duration) ([]byte, error)
}
