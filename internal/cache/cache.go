// Package cache implements the object cache settings are read through.
// Entries are JSON encoded and live in a fiber.Storage, so the cache is shared
// between processes whenever the storage is.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ErrMiss is returned by Get when the key is not cached.
var ErrMiss = errors.New("cache miss")

// Cache is a JSON object cache on top of a fiber.Storage.
type Cache struct {
	storage fiber.Storage
	prefix  string
	ttl     time.Duration
}

// New creates a cache. Keys are namespaced with prefix, ttl 0 keeps entries until deleted.
func New(storage fiber.Storage, prefix string, ttl time.Duration) *Cache {
	if storage == nil {
		panic("cache storage is nil")
	}

	return &Cache{storage: storage, prefix: prefix, ttl: ttl}
}

// Key builds the cache key of an option for a site.
func Key(siteID uint64, name string) string {
	return fmt.Sprintf("site:%d:%s", siteID, name)
}

// Get decodes the cached value of key into v.
func (c *Cache) Get(key string, v interface{}) error {
	raw, err := c.storage.Get(c.prefix + key)
	if err != nil {
		return fmt.Errorf("cache get %s: %w", key, err)
	}

	// fiber storages report a missing key as nil value without error
	if len(raw) == 0 {
		return ErrMiss
	}

	return json.Unmarshal(raw, v)
}

// Set stores v under key.
func (c *Cache) Set(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}

	return c.storage.Set(c.prefix+key, raw, c.ttl)
}

// Delete removes key from the cache.
func (c *Cache) Delete(key string) error {
	return c.storage.Delete(c.prefix + key)
}

// Flush drops every cached entry.
func (c *Cache) Flush() error {
	return c.storage.Reset()
}
