package repository

import (
	"context"
	"sync"
	"time"
)

// how often Set walks the map for expired entries
const memorySweepInterval = time.Minute

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache is the process-local CacheRepository used when no Redis
// address is configured.
type MemoryCache struct {
	mu        sync.Mutex
	data      map[string]memoryEntry
	now       func() time.Time
	lastSweep time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		data: make(map[string]memoryEntry),
		now:  time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.data[key]
	if !ok {
		return "", false, nil
	}
	if entry.expired(m.now()) {
		delete(m.data, key)
		return "", false, nil
	}
	return entry.value, true, nil
}

// Set stores value under key. A ttl <= 0 never expires. Expired entries of
// other keys are evicted at most once per memorySweepInterval.
func (m *MemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastSweep) >= memorySweepInterval {
		m.sweep(now)
	}

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = now.Add(ttl)
	}
	m.data[key] = entry
	return nil
}

// sweep must be called with mu held.
func (m *MemoryCache) sweep(now time.Time) {
	for key, entry := range m.data {
		if entry.expired(now) {
			delete(m.data, key)
		}
	}
	m.lastSweep = now
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}
