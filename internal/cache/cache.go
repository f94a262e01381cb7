// File: internal/cache/cache.go

package cache

import (
	"container/list"
	"sync"
	"time"
)

// Item represents a cached item with expiration
type Item struct {
	Key        string
	Value      interface{}
	Expiration int64
}

// Cache is a thread-safe LRU cache with per-item TTL, used to avoid
// re-running identical concert searches against the Reddit API.
type Cache struct {
	maxItems   int
	defaultTTL time.Duration

	mu        sync.Mutex
	items     map[string]*list.Element
	evictList *list.List
	stop      chan struct{}
}

// New creates a cache holding at most maxItems entries, each expiring
// after ttl. A background janitor drops expired entries.
func New(maxItems int, ttl time.Duration) *Cache {
	if maxItems <= 0 {
		maxItems = 1000
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}

	c := &Cache{
		maxItems:   maxItems,
		defaultTTL: ttl,
		items:      make(map[string]*list.Element, maxItems),
		evictList:  list.New(),
		stop:       make(chan struct{}),
	}

	go c.janitor()

	return c
}

// Set adds an item to the cache with the default TTL.
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if element, exists := c.items[key]; exists {
		c.evictList.Remove(element)
		delete(c.items, key)
	}

	for c.evictList.Len() >= c.maxItems {
		c.evictOldest()
	}

	element := c.evictList.PushFront(&Item{
		Key:        key,
		Value:      value,
		Expiration: time.Now().Add(c.defaultTTL).UnixNano(),
	})
	c.items[key] = element
}

// Get retrieves an item from the cache.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, found := c.items[key]
	if !found {
		return nil, false
	}

	item := element.Value.(*Item)
	if item.Expiration < time.Now().UnixNano() {
		c.removeElement(element)
		return nil, false
	}

	c.evictList.MoveToFront(element)
	return item.Value, true
}

// Len returns the number of items in the cache.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

// Close stops the janitor.
func (c *Cache) Close() {
	close(c.stop)
}

func (c *Cache) removeElement(e *list.Element) {
	c.evictList.Remove(e)
	delete(c.items, e.Value.(*Item).Key)
}

func (c *Cache) evictOldest() {
	if element := c.evictList.Back(); element != nil {
		c.removeElement(element)
	}
}

func (c *Cache) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now().UnixNano()
			c.mu.Lock()
			for _, element := range c.items {
				if element.Value.(*Item).Expiration < now {
					c.removeElement(element)
				}
			}
			c.mu.Unlock()
		case <-c.stop:
			return
		}
	}
}
