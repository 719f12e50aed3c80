package caching

import (
	"context"
	"encoding/json"
	"time"
)

// DefaultTTL matches the staleness window the admin UI tolerates for list
// and detail reads before a refetch.
const DefaultTTL = 5 * time.Minute

// CacheService layers JSON encoding and the Key scheme over a Store. Cache
// errors are reported to the caller but are never fatal for read paths; the
// database remains the source of truth.
type CacheService struct {
	store Store
}

func NewCacheService(store Store) *CacheService {
	return &CacheService{store: store}
}

// GetJSON loads the value under key into dst. The bool result reports a
// cache hit; (false, nil) is a miss.
func (c *CacheService) GetJSON(ctx context.Context, key Key, dst any) (bool, error) {
	data, err := c.store.Get(ctx, key.String())
	if err != nil || data == nil {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		// A corrupt entry behaves like a miss; drop it so the next write
		// replaces it.
		_ = c.store.Del(ctx, key.String())
		return false, nil
	}
	return true, nil
}

// SetJSON stores v under key with the given TTL.
func (c *CacheService) SetJSON(ctx context.Context, key Key, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, key.String(), data, ttl)
}

// Invalidate marks the given keys stale by removing them; the next read
// refetches from the database.
func (c *CacheService) Invalidate(ctx context.Context, keys ...Key) error {
	raw := make([]string, 0, len(keys))
	for _, key := range keys {
		raw = append(raw, key.String())
	}
	return c.store.Del(ctx, raw...)
}

// Ping reports backing store connectivity for health checks.
func (c *CacheService) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}
