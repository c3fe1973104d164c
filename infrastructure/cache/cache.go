package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"youtube-fetcher/domain/repository"

	"github.com/redis/go-redis/v9"
)

// Cache wraps the Redis client behind the ICache contract
type Cache struct {
	client *redis.Client
}

// NewCache connects to Redis and verifies the connection
func NewCache(ctx context.Context, host, port, password string, database int) (repository.ICache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", host, port),
		Password: password,
		DB:       database,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return &Cache{client: client}, nil
}

func (c *Cache) HashSet(ctx context.Context, key string, fields map[string]interface{}) error {
	if err := c.client.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

func (c *Cache) HashGetAll(ctx context.Context, key string) (map[string]string, error) {
	data, err := c.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("hgetall %s: %w", key, err)
	}
	return data, nil
}

func (c *Cache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	if err := c.client.Expire(ctx, key, ttl).Err(); err != nil {
		return fmt.Errorf("expire %s: %w", key, err)
	}
	return nil
}

func (c *Cache) PushQueue(ctx context.Context, queue string, payload []byte) error {
	if err := c.client.LPush(ctx, queue, payload).Err(); err != nil {
		return fmt.Errorf("lpush %s: %w", queue, err)
	}
	return nil
}

// PopQueue blocks up to timeout waiting for work; returns nil payload when
// the queue stays empty.
func (c *Cache) PopQueue(ctx context.Context, queue string, timeout time.Duration) ([]byte, error) {
	res, err := c.client.BRPop(ctx, timeout, queue).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("brpop %s: %w", queue, err)
	}
	if len(res) < 2 {
		return nil, nil
	}
	return []byte(res[1]), nil
}
