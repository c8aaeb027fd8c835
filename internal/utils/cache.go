package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"
)

// CacheItem wraps a cached value with its expiry.
type CacheItem struct {
	Data      interface{}
	ExpiresAt time.Time
}

// PageCache is an in-process TTL cache over an LRU, used for the hot listing
// pages.
type PageCache struct {
	lruCache *lru.Cache[string, CacheItem]
}

// NewPageCache creates a cache holding up to size entries.
func NewPageCache(size int) *PageCache {
	l, err := lru.New[string, CacheItem](size)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create LRU cache")
	}
	return &PageCache{lruCache: l}
}

// Set stores data under key for ttl.
func (c *PageCache) Set(key string, data interface{}, ttl time.Duration) {
	c.lruCache.Add(key, CacheItem{
		Data:      data,
		ExpiresAt: time.Now().Add(ttl),
	})
}

// Get returns the cached value, or nil when missing or expired.
func (c *PageCache) Get(key string) interface{} {
	val, ok := c.lruCache.Get(key)
	if !ok {
		return nil
	}
	if time.Now().After(val.ExpiresAt) {
		c.lruCache.Remove(key)
		return nil
	}
	return val.Data
}

// Delete drops one key.
func (c *PageCache) Delete(key string) {
	c.lruCache.Remove(key)
}
