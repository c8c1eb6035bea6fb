package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// LRUStore is a thread-safe in-process Store. Entries expire after the TTL and the
// least recently used entry is evicted once capacity is reached.
type LRUStore struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	entries  map[string]*list.Element
	order    *list.List
	nowFn    func() time.Time
}

type lruEntry struct {
	key       string
	value     []byte
	expiresAt time.Time
}

// NewLRUStore creates a new LRU store with the given capacity and TTL.
func NewLRUStore(capacity int, ttl time.Duration) *LRUStore {
	if capacity < 1 {
		capacity = 1
	}
	return &LRUStore{
		capacity: capacity,
		ttl:      ttlOrDefault(ttl),
		entries:  make(map[string]*list.Element),
		order:    list.New(),
		nowFn:    time.Now,
	}
}

// Get returns a copy of the cached value.
func (c *LRUStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, exists := c.entries[key]
	if !exists {
		return nil, false, nil
	}

	entry := elem.Value.(*lruEntry)
	if !c.nowFn().Before(entry.expiresAt) {
		c.remove(elem)
		return nil, false, nil
	}

	c.order.MoveToFront(elem)
	return append([]byte(nil), entry.value...), true, nil
}

// Set stores a copy of value, evicting the least recently used entry if full.
func (c *LRUStore) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.nowFn().Add(c.ttl)
	value = append([]byte(nil), value...)

	if elem, exists := c.entries[key]; exists {
		c.order.MoveToFront(elem)
		entry := elem.Value.(*lruEntry)
		entry.value = value
		entry.expiresAt = expiresAt
		return nil
	}

	if c.order.Len() >= c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.remove(oldest)
		}
	}

	c.entries[key] = c.order.PushFront(&lruEntry{key: key, value: value, expiresAt: expiresAt})
	return nil
}

// Len reports the number of entries, including expired ones not yet evicted.
func (c *LRUStore) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

func (c *LRUStore) remove(elem *list.Element) {
	delete(c.entries, elem.Value.(*lruEntry).key)
	c.order.Remove(elem)
}
