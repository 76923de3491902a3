package cache

import (
	"sync"
	"time"
)

// TTLStore is a small expiring key set. The analytics trigger uses it to
// coalesce bursts of attempt writes per user; implementations must be safe
// for concurrent use. The in-memory store is process-local and non-durable,
// which is acceptable because recomputation is idempotent. A distributed
// implementation can be swapped in without touching callers.
type TTLStore interface {
	// SetIfAbsent stores the key with the given TTL and reports whether
	// the key was newly stored (false when a live entry already exists).
	SetIfAbsent(key string, ttl time.Duration) bool
	// Has reports whether a live entry exists for the key.
	Has(key string) bool
	// Delete removes the key.
	Delete(key string)
}

type memoryStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
	now     func() time.Time
}

// NewMemoryStore creates an in-memory TTLStore. Expired entries are reaped
// lazily on access.
func NewMemoryStore() TTLStore {
	return &memoryStore{
		entries: make(map[string]time.Time),
		now:     time.Now,
	}
}

// NewMemoryStoreWithClock creates an in-memory TTLStore with an injected
// clock, for tests.
func NewMemoryStoreWithClock(now func() time.Time) TTLStore {
	return &memoryStore{
		entries: make(map[string]time.Time),
		now:     now,
	}
}

func (s *memoryStore) SetIfAbsent(key string, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if deadline, ok := s.entries[key]; ok && s.now().Before(deadline) {
		return false
	}
	s.entries[key] = s.now().Add(ttl)
	return true
}

func (s *memoryStore) Has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	deadline, ok := s.entries[key]
	if !ok {
		return false
	}
	if !s.now().Before(deadline) {
		delete(s.entries, key)
		return false
	}
	return true
}

func (s *memoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}
