package templates

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-sitebuilder/internal/logging"
	"github.com/goliatone/go-sitebuilder/pkg/interfaces"
)

// environmentTTL is how long a compiled environment is considered fresh.
const environmentTTL = 5 * time.Minute

type cacheKey struct {
	tenant  uuid.UUID
	name    string
	version int
}

func newCacheKey(tenantID *uuid.UUID, name string, version int) cacheKey {
	key := cacheKey{name: name, version: version}
	if tenantID != nil {
		key.tenant = *tenantID
	}
	return key
}

type cacheEntry struct {
	env      *Environment
	cachedAt time.Time
}

// Cache resolves template keys to compiled, reusable rendering environments.
// A single RWMutex guards the entry map: concurrent hits proceed without
// blocking each other, and concurrent misses on the same key may both
// compile, with the last write winning. Either result is equivalent.
type Cache struct {
	store  RecordStore
	logger interfaces.Logger
	now    func() time.Time

	mu      sync.RWMutex
	entries map[cacheKey]*cacheEntry
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithCacheLogger attaches a logger to the cache.
func WithCacheLogger(logger interfaces.Logger) CacheOption {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithCacheNow overrides the time source (primarily for tests).
func WithCacheNow(now func() time.Time) CacheOption {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// NewCache constructs a template cache over a record store.
func NewCache(store RecordStore, opts ...CacheOption) *Cache {
	if store == nil {
		panic("templates: record store required")
	}
	c := &Cache{
		store:   store,
		logger:  logging.NoOp(),
		now:     time.Now,
		entries: make(map[cacheKey]*cacheEntry),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get resolves a (tenant, name, version) key to a compiled environment. A
// fresh cached entry is returned without touching the record store; a miss
// or stale entry refetches and recompiles.
func (c *Cache) Get(ctx context.Context, tenantID *uuid.UUID, name string, version int) (*Environment, error) {
	key := newCacheKey(tenantID, name, version)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if ok && c.fresh(entry) {
		return entry.env, nil
	}

	record, err := c.store.GetByKey(ctx, tenantID, name, version)
	if err != nil {
		return nil, err
	}
	return c.compileAndStore(key, record)
}

// GetByID resolves a template id to a compiled environment. Cached entries
// are scanned linearly for a matching id, which is acceptable at the small
// cache sizes this core runs with.
func (c *Cache) GetByID(ctx context.Context, id uuid.UUID) (*Environment, error) {
	c.mu.RLock()
	for _, entry := range c.entries {
		if entry.env.TemplateID() == id && c.fresh(entry) {
			c.mu.RUnlock()
			return entry.env, nil
		}
	}
	c.mu.RUnlock()

	record, err := c.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	key := newCacheKey(record.TenantID, record.Name, record.Version)
	return c.compileAndStore(key, record)
}

// Invalidate removes one entry.
func (c *Cache) Invalidate(tenantID *uuid.UUID, name string, version int) {
	key := newCacheKey(tenantID, name, version)
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// InvalidateTenant removes every entry in a tenant's scope.
func (c *Cache) InvalidateTenant(tenantID *uuid.UUID) {
	var tenant uuid.UUID
	if tenantID != nil {
		tenant = *tenantID
	}
	c.mu.Lock()
	for key := range c.entries {
		if key.tenant == tenant {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

// Clear empties the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.entries = make(map[cacheKey]*cacheEntry)
	c.mu.Unlock()
}

// Len reports the number of cached environments.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache) fresh(entry *cacheEntry) bool {
	return c.now().Sub(entry.cachedAt) < environmentTTL
}

func (c *Cache) compileAndStore(key cacheKey, record *Template) (*Environment, error) {
	env, err := Compile(record)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = &cacheEntry{env: env, cachedAt: c.now()}
	c.mu.Unlock()

	c.logger.Debug("compiled template environment",
		"template_id", record.ID.String(),
		"name", record.Name,
		"version", record.Version,
	)
	return env, nil
}
