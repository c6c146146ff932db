package baseline

import (
	"sync"

	"github.com/socialsentrix/sentrix/internal/reputation"
)

// Cache holds the baselines fetched during one scoring call. It is created
// per invocation and discarded with it; baselines are never persisted across
// calls, so freshness is not a concern the engine manages.
type Cache struct {
	mu      sync.Mutex
	entries map[string]reputation.CommunityBaseline
}

// NewCache creates an empty per-call cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]reputation.CommunityBaseline)}
}

// Get returns the cached baseline for a community.
func (c *Cache) Get(community string) (reputation.CommunityBaseline, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	baseline, ok := c.entries[community]

	return baseline, ok
}

// Set stores a community's baseline.
func (c *Cache) Set(community string, baseline reputation.CommunityBaseline) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[community] = baseline
}

// Snapshot copies the cache contents into a plain map.
func (c *Cache) Snapshot() map[string]reputation.CommunityBaseline {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := make(map[string]reputation.CommunityBaseline, len(c.entries))
	for community, baseline := range c.entries {
		snapshot[community] = baseline
	}

	return snapshot
}
