package cache

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/user"
	"path/filepath"
	"time"
)

// FileStore persists entries as JSON files, one per key, so cached
// responses survive process restarts. Writes go to a temp file first and
// are renamed into place (atomic on the same filesystem).
type FileStore struct {
	dir string
	now func() time.Time
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a file-backed store rooted at dir. An empty dir
// falls back to ~/.notion_cache.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		usr, err := user.Current()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(usr.HomeDir, ".notion_cache")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &FileStore{dir: dir, now: time.Now}, nil
}

func (s *FileStore) Get(key string) (json.RawMessage, bool) {
	fp := s.path(key)
	data, err := os.ReadFile(fp)
	if err != nil {
		return nil, false
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false
	}
	if e.expired(s.now()) {
		_ = os.Remove(fp)
		return nil, false
	}
	return e.Value, true
}

func (s *FileStore) Set(key string, value json.RawMessage, ttl time.Duration) {
	now := s.now()
	e := Entry{
		Value:     value,
		FetchedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	data, err := json.MarshalIndent(&e, "", "  ")
	if err != nil {
		return
	}
	fp := s.path(key)
	tmp := fp + fmt.Sprintf(".tmp.%d", rand.Int())
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return
	}
	_ = os.Rename(tmp, fp)
}

func (s *FileStore) Clear(keys ...string) {
	if len(keys) > 0 {
		for _, k := range keys {
			_ = os.Remove(s.path(k))
		}
		return
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return
	}
	for _, de := range entries {
		if !de.IsDir() {
			_ = os.Remove(filepath.Join(s.dir, de.Name()))
		}
	}
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, sanitizeKey(key)+".json")
}
