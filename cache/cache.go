// Package cache stores serialized catalog listings for a limited time.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Cache stores JSON documents under string keys.
type Cache interface {
	// GetJSON decodes the value at key into dest and reports whether it was
	// present.
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any) error
	DeletePrefix(ctx context.Context, prefix string) error
}

type item struct {
	value      []byte
	expiration int64
}

// MemoryCache is a process-local cache with a single TTL for every entry.
type MemoryCache struct {
	mu    sync.RWMutex
	items map[string]item
	ttl   time.Duration
	done  chan struct{}
	once  sync.Once
}

// NewMemoryCache starts a janitor that drops expired entries every interval.
// Close stops it.
func NewMemoryCache(ttl, interval time.Duration) *MemoryCache {
	c := &MemoryCache{
		items: make(map[string]item),
		ttl:   ttl,
		done:  make(chan struct{}),
	}
	if interval > 0 {
		go c.cleanupExpired(interval)
	}
	return c
}

func (c *MemoryCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	c.mu.RLock()
	it, found := c.items[key]
	c.mu.RUnlock()

	if !found || time.Now().UnixNano() > it.expiration {
		return false, nil
	}
	if err := json.Unmarshal(it.value, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *MemoryCache) SetJSON(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = item{
		value:      data,
		expiration: time.Now().Add(c.ttl).UnixNano(),
	}
	return nil
}

func (c *MemoryCache) DeletePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
	return nil
}

func (c *MemoryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *MemoryCache) Close() {
	c.once.Do(func() { close(c.done) })
}

func (c *MemoryCache) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now().UnixNano()
			for key, it := range c.items {
				if now > it.expiration {
					delete(c.items, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// RedisCache keeps entries in Redis so every API instance shares them.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (r *RedisCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (r *RedisCache) SetJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, r.ttl).Err()
}

func (r *RedisCache) DeletePrefix(ctx context.Context, prefix string) error {
	iter := r.client.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}
