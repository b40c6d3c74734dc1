package labels

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// ProgramCache stores compiled selector programs keyed by expression strings.
type ProgramCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
}

// Default retention for compiled selector programs.
const (
	DefaultProgramExpiration      = 10 * time.Minute
	DefaultProgramCleanupInterval = 30 * time.Minute
)

// NewProgramCache returns a TTL'd in-memory ProgramCache. Zero durations fall
// back to the package defaults.
func NewProgramCache(defaultExpiration, cleanupInterval time.Duration) ProgramCache {
	if defaultExpiration == 0 {
		defaultExpiration = DefaultProgramExpiration
	}
	if cleanupInterval == 0 {
		cleanupInterval = DefaultProgramCleanupInterval
	}
	return &memoryProgramCache{
		cache: gocache.New(defaultExpiration, cleanupInterval),
	}
}

type memoryProgramCache struct {
	cache *gocache.Cache
}

func (c *memoryProgramCache) Get(key string) (any, bool) {
	return c.cache.Get(key)
}

func (c *memoryProgramCache) Set(key string, value any) {
	c.cache.Set(key, value, gocache.DefaultExpiration)
}
