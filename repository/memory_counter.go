package repository

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     int64
	expiresAt time.Time
}

// MemoryCounter is the in-process CounterRepository used when no Redis
// address is configured, and in tests.
type MemoryCounter struct {
	mu   sync.Mutex
	data map[string]*memoryEntry
	now  func() time.Time
}

func NewMemoryCounter() *MemoryCounter {
	return &MemoryCounter{
		data: make(map[string]*memoryEntry),
		now:  time.Now,
	}
}

func (m *MemoryCounter) Incr(_ context.Context, key string, ttl time.Duration) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	e, ok := m.data[key]
	if !ok || !now.Before(e.expiresAt) {
		e = &memoryEntry{expiresAt: now.Add(ttl)}
		m.data[key] = e
	}
	e.value++

	// drop anything else that has expired so the map does not grow forever
	if len(m.data) > 1024 {
		for k, v := range m.data {
			if !now.Before(v.expiresAt) {
				delete(m.data, k)
			}
		}
	}
	return e.value, nil
}
