package inmemory

import (
	"sync"
	"time"

	profiledomain "money-tracker-go/internal/domain/profile"
)

type InMemoryProfileCache struct {
	mu    sync.RWMutex
	items map[string]profileItem
	now   func() time.Time
}

type profileItem struct {
	value     profiledomain.Profile
	expiresAt time.Time
}

func NewInMemoryProfileCache() *InMemoryProfileCache {
	return &InMemoryProfileCache{
		items: make(map[string]profileItem),
		now:   time.Now,
	}
}

func (c *InMemoryProfileCache) GetByID(id string) (*profiledomain.Profile, bool) {
	now := c.now()

	c.mu.RLock()
	item, ok := c.items[id]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		item, ok = c.items[id]
		if ok && !item.expiresAt.After(now) {
			delete(c.items, id)
		}
		c.mu.Unlock()
		return nil, false
	}

	value := item.value
	return &value, true
}

func (c *InMemoryProfileCache) SetByID(id string, profile *profiledomain.Profile, ttl time.Duration) {
	if profile == nil || ttl <= 0 {
		c.DeleteByID(id)
		return
	}

	c.mu.Lock()
	c.items[id] = profileItem{
		value:     *profile,
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
}

func (c *InMemoryProfileCache) DeleteByID(id string) {
	c.mu.Lock()
	delete(c.items, id)
	c.mu.Unlock()
}
