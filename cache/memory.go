package cache

import (
	"encoding/json"
	"sync"
	"time"
)

// MemoryStore keeps entries in a mutex-guarded map. Concurrent Sets on the
// same key are last-write-wins; no ordering between them is promised.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*Entry
	now     func() time.Time
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*Entry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Get(key string) (json.RawMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if e.expired(s.now()) {
		delete(s.entries, key)
		return nil, false
	}
	return e.Value, true
}

func (s *MemoryStore) Set(key string, value json.RawMessage, ttl time.Duration) {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = &Entry{
		Value:     value,
		FetchedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

func (s *MemoryStore) Clear(keys ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(keys) == 0 {
		s.entries = make(map[string]*Entry)
		return
	}
	for _, k := range keys {
		delete(s.entries, k)
	}
}
