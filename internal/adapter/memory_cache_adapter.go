package adapter

import (
	"context"
	"sync"
	"time"

	"vocab-quiz/internal/domain"
)

// sweepEvery is the number of writes between scans for expired keys.
const sweepEvery = 128

type memoryEntry struct {
	value     string
	expiresAt time.Time // zero means no expiry
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryCacheAdapter implements domain.Cache in process memory. It backs the
// session store and the pronunciation cache when no Redis is configured.
type MemoryCacheAdapter struct {
	mu     sync.Mutex
	items  map[string]memoryEntry
	writes int
	now    func() time.Time
}

// NewMemoryCacheAdapter creates an empty in-memory cache.
func NewMemoryCacheAdapter() *MemoryCacheAdapter {
	return &MemoryCacheAdapter{
		items: make(map[string]memoryEntry),
		now:   time.Now,
	}
}

func (m *MemoryCacheAdapter) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.items[key]
	if !ok {
		return "", domain.ErrCacheMiss
	}
	if entry.expired(m.now()) {
		delete(m.items, key)
		return "", domain.ErrCacheMiss
	}
	return entry.value, nil
}

func (m *MemoryCacheAdapter) Set(_ context.Context, key string, value string, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	entry := memoryEntry{value: value}
	if expiration > 0 {
		entry.expiresAt = now.Add(expiration)
	}
	m.items[key] = entry

	m.writes++
	if m.writes >= sweepEvery {
		m.writes = 0
		for k, e := range m.items {
			if e.expired(now) {
				delete(m.items, k)
			}
		}
	}
	return nil
}

func (m *MemoryCacheAdapter) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

func (m *MemoryCacheAdapter) Ping(context.Context) error {
	return nil
}

// Len returns the number of stored keys, expired ones included until they
// are swept.
func (m *MemoryCacheAdapter) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
