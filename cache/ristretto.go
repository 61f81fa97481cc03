package cache

import (
	"github.com/dgraph-io/ristretto/v2"
	"github.com/poiesic/voyant/core"
)

const defaultMaxEntries = 4096

// MemoryCache is a bounded in-memory vector cache backed by ristretto.
// Each entry costs one unit, so MaxCost bounds the entry count directly.
type MemoryCache struct {
	cache *ristretto.Cache[uint64, []float32]
}

var _ VectorCache = (*MemoryCache)(nil)

// NewMemoryCache creates an in-memory cache holding at most maxEntries
// vectors. A non-positive maxEntries selects the default capacity.
func NewMemoryCache(maxEntries int64) (*MemoryCache, error) {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}

	cache, err := ristretto.NewCache(&ristretto.Config[uint64, []float32]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
		// Entries are costed at one unit each; without this flag ristretto
		// adds ~50 units of internal overhead per entry, which exceeds small
		// MaxCost values and silently rejects every Set.
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}

	return &MemoryCache{cache: cache}, nil
}

// Get returns the cached vector for the key, if present.
func (c *MemoryCache) Get(key core.ID) ([]float32, bool) {
	return c.cache.Get(uint64(key))
}

// Put stores the vector under the key.
// Waits for the write buffer to drain so a subsequent Get observes the entry.
func (c *MemoryCache) Put(key core.ID, vector []float32) error {
	c.cache.Set(uint64(key), vector, 1)
	c.cache.Wait()
	return nil
}

// Close releases the cache's internal goroutines.
func (c *MemoryCache) Close() error {
	c.cache.Close()
	return nil
}
