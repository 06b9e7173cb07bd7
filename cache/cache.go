// Package cache is a caller-driven TTL cache for API responses. It makes no
// network calls and runs no background eviction: expiry is fixed when an
// entry is written, checked on every read, and expired entries are purged
// lazily on the access that finds them.
package cache

import (
	"encoding/json"
	"time"
)

// Entry is a stored value with its creation time and absolute expiry.
type Entry struct {
	Value     json.RawMessage `json:"value"`
	FetchedAt time.Time       `json:"fetched_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// expired reports whether the entry must no longer be returned. An entry
// written with ttl=0 expires at its own write time, so it is already stale.
func (e *Entry) expired(now time.Time) bool {
	return !now.Before(e.ExpiresAt)
}

// Store is the cache contract. Get never returns a value past its TTL;
// Set overwrites any prior entry under the same key with expiry now+ttl;
// Clear removes the named keys, or everything when called with none.
type Store interface {
	Get(key string) (json.RawMessage, bool)
	Set(key string, value json.RawMessage, ttl time.Duration)
	Clear(keys ...string)
}
