package cache

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	s.Set("users_me", json.RawMessage(`{"object":"user","id":"u1"}`), time.Minute)
	v, ok := s.Get("users_me")
	require.True(t, ok)
	require.JSONEq(t, `{"object":"user","id":"u1"}`, string(v))
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	s1, err := NewFileStore(dir)
	require.NoError(t, err)
	s1.Set("k", json.RawMessage(`"persisted"`), time.Hour)

	s2, err := NewFileStore(dir)
	require.NoError(t, err)
	v, ok := s2.Get("k")
	require.True(t, ok)
	require.Equal(t, `"persisted"`, string(v))
}

func TestFileStore_ZeroTTLIsImmediatelyExpired(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	s.Set("k", json.RawMessage(`1`), 0)
	_, ok := s.Get("k")
	require.False(t, ok)
}

func TestFileStore_ExpiredEntryIsRemovedFromDisk(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	now := time.Now()
	s.now = func() time.Time { return now }

	s.Set("k", json.RawMessage(`"v"`), time.Second)
	require.FileExists(t, s.path("k"))

	now = now.Add(2 * time.Second)
	_, ok := s.Get("k")
	require.False(t, ok)
	require.NoFileExists(t, s.path("k"), "expired entries are purged on access")
}

func TestFileStore_ClearAll(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	s.Set("a", json.RawMessage(`1`), time.Minute)
	s.Set("b", json.RawMessage(`2`), time.Minute)
	s.Clear()

	_, ok := s.Get("a")
	require.False(t, ok)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestFileStore_ClearOne(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	s.Set("a", json.RawMessage(`1`), time.Minute)
	s.Set("b", json.RawMessage(`2`), time.Minute)
	s.Clear("a")

	_, ok := s.Get("a")
	require.False(t, ok)
	_, ok = s.Get("b")
	require.True(t, ok)
}

func TestFileStore_CorruptFileIsAMiss(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(s.path("k"), []byte("not json"), 0o600))
	_, ok := s.Get("k")
	require.False(t, ok)
}
