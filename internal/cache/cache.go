package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/pulseboard/pulseboard/internal/config"
	"github.com/pulseboard/pulseboard/internal/logger"
)

// Cache prefixes keep key namespaces separate per entity
const (
	PrefixReport = "report"
	PrefixUser   = "user"
)

// Cache is a simple in-process key-value cache with TTL
type Cache interface {
	Get(ctx context.Context, key string) (interface{}, bool)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration)
	Delete(ctx context.Context, key string)
	DeleteByPrefix(ctx context.Context, prefix string)
}

type inMemoryCache struct {
	store *gocache.Cache
	log   *logger.Logger
}

// NewInMemoryCache creates a cache from the configured TTL and cleanup
// interval. When caching is disabled the returned cache stores nothing.
func NewInMemoryCache(cfg *config.Configuration, log *logger.Logger) Cache {
	if !cfg.Cache.Enabled {
		return &noopCache{}
	}
	return &inMemoryCache{
		store: gocache.New(cfg.Cache.TTL, cfg.Cache.CleanupInterval),
		log:   log,
	}
}

func (c *inMemoryCache) Get(_ context.Context, key string) (interface{}, bool) {
	return c.store.Get(key)
}

func (c *inMemoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) {
	c.store.Set(key, value, ttl)
}

func (c *inMemoryCache) Delete(_ context.Context, key string) {
	c.store.Delete(key)
}

func (c *inMemoryCache) DeleteByPrefix(_ context.Context, prefix string) {
	for key := range c.store.Items() {
		if strings.HasPrefix(key, prefix) {
			c.store.Delete(key)
		}
	}
}

type noopCache struct{}

func (noopCache) Get(context.Context, string) (interface{}, bool)             { return nil, false }
func (noopCache) Set(context.Context, string, interface{}, time.Duration)     {}
func (noopCache) Delete(context.Context, string)                              {}
func (noopCache) DeleteByPrefix(context.Context, string)                      {}

// GenerateKey builds a cache key from a prefix and its parts
func GenerateKey(prefix string, parts ...interface{}) string {
	b := strings.Builder{}
	b.WriteString(prefix)
	for _, p := range parts {
		b.WriteString(":")
		b.WriteString(fmt.Sprintf("%v", p))
	}
	return b.String()
}

// Value retrieves a typed value from the cache, ignoring entries of the
// wrong type.
func Value[T any](ctx context.Context, c Cache, key string) (T, bool) {
	var zero T
	raw, found := c.Get(ctx, key)
	if !found {
		return zero, false
	}
	v, ok := raw.(T)
	if !ok {
		return zero, false
	}
	return v, true
}
