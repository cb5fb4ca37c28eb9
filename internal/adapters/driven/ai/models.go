package ai

import (
	"context"
	"sync"
	"time"

	"github.com/daybook-labs/daybook/internal/core/domain"
	"github.com/daybook-labs/daybook/internal/core/ports/driven"
)

// DefaultModelCacheTTL is how long a fetched model list stays fresh.
const DefaultModelCacheTTL = 5 * time.Minute

// modelEntry is one cached model list.
type modelEntry struct {
	models    []string
	fetchedAt time.Time
}

// ModelCache caches per-provider model lists so interactive surfaces
// do not hit the backend on every lookup. Safe for concurrent use.
type ModelCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[domain.AIProvider]modelEntry
}

// NewModelCache creates a model cache. A non-positive ttl uses the
// default.
func NewModelCache(ttl time.Duration) *ModelCache {
	if ttl <= 0 {
		ttl = DefaultModelCacheTTL
	}
	return &ModelCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[domain.AIProvider]modelEntry),
	}
}

// Models returns the model list for a provider, fetching it when the
// cached copy is missing or stale. Fetch failures are not cached.
func (c *ModelCache) Models(ctx context.Context, key domain.AIProvider, provider driven.Provider) ([]string, error) {
	c.mu.Lock()
	entry, ok := c.entries[key]
	if ok && c.now().Sub(entry.fetchedAt) < c.ttl {
		c.mu.Unlock()
		return entry.models, nil
	}
	c.mu.Unlock()

	models, err := ListModels(ctx, provider)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[key] = modelEntry{models: models, fetchedAt: c.now()}
	c.mu.Unlock()
	return models, nil
}

// Invalidate drops a provider's cached list, forcing the next lookup
// to refetch. Called when the provider's settings change.
func (c *ModelCache) Invalidate(key domain.AIProvider) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}
