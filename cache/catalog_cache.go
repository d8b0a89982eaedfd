package cache

import (
	"context"
	"time"

	"musicmanager/logger"

	"github.com/redis/go-redis/v9"
)

const (
	projectListKey = "catalog:projects"
	beatListKey    = "catalog:beats"
)

// CatalogCache caches the serialized project and beat list payloads.
// It is never load-bearing: a nil receiver or any Redis failure behaves
// like a miss and the caller falls through to the store.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache creates a catalog cache over an existing Redis client.
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{client: client, ttl: ttl}
}

func (c *CatalogCache) get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("catalog cache read failed",
				logger.String("key", key),
				logger.ErrorField(err))
		}
		return nil, false
	}
	return payload, true
}

func (c *CatalogCache) set(ctx context.Context, key string, payload []byte) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		logger.Warn("catalog cache write failed",
			logger.String("key", key),
			logger.ErrorField(err))
	}
}

func (c *CatalogCache) invalidate(ctx context.Context, key string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		logger.Warn("catalog cache invalidation failed",
			logger.String("key", key),
			logger.ErrorField(err))
	}
}

// GetProjectList returns the cached project list payload, if any.
func (c *CatalogCache) GetProjectList(ctx context.Context) ([]byte, bool) {
	return c.get(ctx, projectListKey)
}

// SetProjectList caches the project list payload.
func (c *CatalogCache) SetProjectList(ctx context.Context, payload []byte) {
	c.set(ctx, projectListKey, payload)
}

// InvalidateProjects drops the cached project list. Called on every
// project or song write.
func (c *CatalogCache) InvalidateProjects(ctx context.Context) {
	c.invalidate(ctx, projectListKey)
}

// GetBeatList returns the cached beat list payload, if any.
func (c *CatalogCache) GetBeatList(ctx context.Context) ([]byte, bool) {
	return c.get(ctx, beatListKey)
}

// SetBeatList caches the beat list payload.
func (c *CatalogCache) SetBeatList(ctx context.Context, payload []byte) {
	c.set(ctx, beatListKey, payload)
}

// InvalidateBeats drops the cached beat list. Called on every beat write.
func (c *CatalogCache) InvalidateBeats(ctx context.Context) {
	c.invalidate(ctx, beatListKey)
}
