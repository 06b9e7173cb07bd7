package cache

import (
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	s := NewMemoryStore()
	s.Set("k", json.RawMessage(`{"object":"user"}`), time.Minute)

	v, ok := s.Get("k")
	require.True(t, ok)
	require.JSONEq(t, `{"object":"user"}`, string(v))
}

func TestMemoryStore_AbsentKey(t *testing.T) {
	s := NewMemoryStore()
	_, ok := s.Get("never-set")
	require.False(t, ok)
}

func TestMemoryStore_ZeroTTLIsImmediatelyExpired(t *testing.T) {
	s := NewMemoryStore()
	s.Set("k", json.RawMessage(`1`), 0)

	_, ok := s.Get("k")
	require.False(t, ok)
}

func TestMemoryStore_ExpiresAfterTTL(t *testing.T) {
	now := time.Now()
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	s.Set("k", json.RawMessage(`"v"`), 10*time.Second)

	now = now.Add(9 * time.Second)
	_, ok := s.Get("k")
	require.True(t, ok, "entry must be served before its TTL elapses")

	now = now.Add(2 * time.Second)
	_, ok = s.Get("k")
	require.False(t, ok, "entry must never be served past its TTL")
}

func TestMemoryStore_ExpiredEntryIsPurged(t *testing.T) {
	now := time.Now()
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	s.Set("k", json.RawMessage(`"v"`), time.Second)
	now = now.Add(2 * time.Second)

	_, ok := s.Get("k")
	require.False(t, ok)
	require.Empty(t, s.entries, "expired entries are removed on access")
}

func TestMemoryStore_SetOverwrites(t *testing.T) {
	s := NewMemoryStore()
	s.Set("k", json.RawMessage(`"old"`), time.Minute)
	s.Set("k", json.RawMessage(`"new"`), time.Minute)

	v, ok := s.Get("k")
	require.True(t, ok)
	require.Equal(t, `"new"`, string(v))
}

func TestMemoryStore_Clear(t *testing.T) {
	s := NewMemoryStore()
	s.Set("a", json.RawMessage(`1`), time.Minute)
	s.Set("b", json.RawMessage(`2`), time.Minute)
	s.Set("c", json.RawMessage(`3`), time.Minute)

	s.Clear("a")
	_, ok := s.Get("a")
	require.False(t, ok)
	_, ok = s.Get("b")
	require.True(t, ok)

	s.Clear()
	_, ok = s.Get("b")
	require.False(t, ok)
	_, ok = s.Get("c")
	require.False(t, ok)
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	s := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", n%4)
			s.Set(key, json.RawMessage(`"v"`), time.Minute)
			s.Get(key)
			s.Clear(key)
		}(i)
	}
	wg.Wait()
}
