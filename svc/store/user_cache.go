package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/notifykit/pkg/cache"
	"github.com/dmitrymomot/notifykit/svc/entity"
)

// LRUUserCache keeps users in process memory.
type LRUUserCache struct {
	lru *cache.LRUCache[string, entity.User]
}

// NewLRUUserCache creates a cache holding up to capacity users for ttl each.
func NewLRUUserCache(capacity int, ttl time.Duration) *LRUUserCache {
	return &LRUUserCache{lru: cache.NewLRUCache[string, entity.User](capacity, cache.WithTTL(ttl))}
}

func (c *LRUUserCache) GetMany(_ context.Context, ids []string) (map[string]entity.User, error) {
	out := make(map[string]entity.User, len(ids))
	for _, id := range ids {
		if u, ok := c.lru.Get(id); ok {
			out[id] = u
		}
	}
	return out, nil
}

func (c *LRUUserCache) SetMany(_ context.Context, users []entity.User) error {
	for _, u := range users {
		c.lru.Put(u.ID, u)
	}
	return nil
}

// RedisUserCache shares cached users between instances. Records are stored
// as JSON under prefix + "user:" + id.
type RedisUserCache struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisUserCache(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisUserCache {
	return &RedisUserCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisUserCache) key(id string) string {
	return c.prefix + "user:" + id
}

func (c *RedisUserCache) GetMany(ctx context.Context, ids []string) (map[string]entity.User, error) {
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = c.key(id)
	}

	values, err := c.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read cached users: %w", err)
	}

	out := make(map[string]entity.User, len(ids))
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var u entity.User
		if err := json.Unmarshal([]byte(raw), &u); err != nil {
			// Treat undecodable entries as misses; the next write replaces them.
			continue
		}
		out[ids[i]] = u
	}
	return out, nil
}

func (c *RedisUserCache) SetMany(ctx context.Context, users []entity.User) error {
	pipe := c.client.Pipeline()
	for _, u := range users {
		data, err := json.Marshal(u)
		if err != nil {
			return fmt.Errorf("failed to encode user %s: %w", u.ID, err)
		}
		pipe.Set(ctx, c.key(u.ID), data, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to cache users: %w", err)
	}
	return nil
}
