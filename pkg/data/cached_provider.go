package data

import (
	"log"
	"path/filepath"
	"sync"

	"github.com/vutran1810/market-analysis-engine/pkg/types"
)

// MemoryCache implements DataCache using in-memory storage
type MemoryCache struct {
	cache map[string][]types.OHLCV
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		cache: make(map[string][]types.OHLCV),
	}
}

// Get retrieves data from cache if available
func (c *MemoryCache) Get(key string) ([]types.OHLCV, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	data, exists := c.cache[key]
	if !exists {
		return nil, false
	}

	// Return a copy so callers cannot mutate cached candles
	result := make([]types.OHLCV, len(data))
	copy(result, data)
	return result, true
}

// Set stores data in cache
func (c *MemoryCache) Set(key string, data []types.OHLCV) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	cached := make([]types.OHLCV, len(data))
	copy(cached, data)
	c.cache[key] = cached
}

// Clear removes all cached data
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache = make(map[string][]types.OHLCV)
}

// Size returns the number of cached entries
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.cache)
}

// CachedProvider wraps another DataProvider with in-memory caching
type CachedProvider struct {
	provider DataProvider
	cache    DataCache
}

// NewCachedProvider creates a new cached data provider
func NewCachedProvider(provider DataProvider) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		cache:    NewMemoryCache(),
	}
}

// NewCachedProviderWithCache creates a cached data provider with a custom cache
func NewCachedProviderWithCache(provider DataProvider, cache DataCache) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		cache:    cache,
	}
}

// GetName returns the name of the underlying provider with cache indication
func (p *CachedProvider) GetName() string {
	return "Cached " + p.provider.GetName()
}

// LoadData loads data through the cache
func (p *CachedProvider) LoadData(source string) ([]types.OHLCV, error) {
	if cachedData, exists := p.cache.Get(source); exists {
		return cachedData, nil
	}

	log.Printf("🔄 Loading candle history from %s", filepath.Base(source))
	data, err := p.provider.LoadData(source)
	if err != nil {
		log.Printf("❌ Failed to load data from %s: %v", filepath.Base(source), err)
		return nil, err
	}

	p.cache.Set(source, data)

	log.Printf("✅ Loaded and cached data from %s (%d records)", filepath.Base(source), len(data))
	return data, nil
}

// ValidateData validates data using the underlying provider
func (p *CachedProvider) ValidateData(data []types.OHLCV) error {
	return p.provider.ValidateData(data)
}

// ClearCache clears all cached data
func (p *CachedProvider) ClearCache() {
	p.cache.Clear()
}

// CacheSize returns the number of cached entries
func (p *CachedProvider) CacheSize() int {
	return p.cache.Size()
}
