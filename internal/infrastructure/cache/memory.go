package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is a simple in-memory key-value store with expiration. Always
// available; used when Redis is disabled or unreachable.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]*memoryItem
}

type memoryItem struct {
	value      []byte
	expireTime time.Time
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	store := &MemoryStore{
		items: make(map[string]*memoryItem),
	}

	// Periodic sweep so idle keys don't pile up between reads
	go store.cleanupExpired()

	return store
}

// Set stores a key-value pair with expiration
func (ms *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.items[key] = &memoryItem{
		value:      value,
		expireTime: time.Now().Add(ttl),
	}
}

// Get retrieves a value by key. Expired entries are deleted on access.
func (ms *MemoryStore) Get(_ context.Context, key string) ([]byte, bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	item, exists := ms.items[key]
	if !exists {
		return nil, false
	}

	if time.Now().After(item.expireTime) {
		delete(ms.items, key)
		return nil, false
	}

	return item.value, true
}

// cleanupExpired periodically removes expired items
func (ms *MemoryStore) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		ms.mu.Lock()
		now := time.Now()
		for key, item := range ms.items {
			if now.After(item.expireTime) {
				delete(ms.items, key)
			}
		}
		ms.mu.Unlock()
	}
}
