package enrichment

import (
	"context"
	"sync"
	"time"
)

// Entry is an immutable cached API response. Entries are replaced wholesale, never merged.
type Entry struct {
	Data      []byte    `json:"data"`
	Timestamp time.Time `json:"timestamp"`
}

// Cache stores raw responses. Staleness is decided by the reader.
type Cache interface {
	Get(ctx context.Context, key string) (Entry, bool)
	Set(ctx context.Context, key string, entry Entry)
}

// MemoryCache is process wide and never evicts, stale entries are overwritten
// on the next successful fetch.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]Entry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]Entry)}
}

func (m *MemoryCache) Get(_ context.Context, key string) (Entry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.entries[key]
	return entry, ok
}

func (m *MemoryCache) Set(_ context.Context, key string, entry Entry) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = entry
}
