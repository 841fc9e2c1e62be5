package usecase

import (
	"sync"
	"time"

	"main/model"
)

// listCache holds the last fetched experience list for up to ttl.
// It is process-wide state shared by every request; writes invalidate
// it synchronously so the next List sees fresh data. It is not
// coordinated across processes.
type listCache struct {
	mu        sync.RWMutex
	ttl       time.Duration
	entries   []*model.Experience
	fetchedAt time.Time
	valid     bool
}

func newListCache(ttl time.Duration) *listCache {
	return &listCache{ttl: ttl}
}

func (c *listCache) Get() ([]*model.Experience, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.valid || time.Since(c.fetchedAt) > c.ttl {
		return nil, false
	}
	return c.entries, true
}

func (c *listCache) Set(entries []*model.Experience) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = entries
	c.fetchedAt = time.Now()
	c.valid = true
}

func (c *listCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = nil
	c.valid = false
}
