package cache

import (
	"crypto/md5"
	"fmt"
	"sort"
	"strings"
)

// KeyFor builds a stable cache key from a resource path and its query
// parameters. Params are sorted so key generation is order-insensitive.
// Callers choose their own key semantics; this is just the common case of
// one entry per path+params.
func KeyFor(path string, params map[string]string) string {
	parts := make([]string, 0, len(params))
	for k, v := range params {
		parts = append(parts, k+"="+v)
	}
	sort.Strings(parts)

	key := strings.ReplaceAll(strings.Trim(path, "/"), "/", "_")
	if len(parts) > 0 {
		key = key + "__" + strings.Join(parts, "__")
	}
	return sanitizeKey(key)
}

// sanitizeKey makes a key safe to use as a filename. Overlong keys are
// replaced with a hash to stay under filesystem name limits.
func sanitizeKey(key string) string {
	if len(key) > 200 {
		hash := md5.Sum([]byte(key))
		return fmt.Sprintf("hash_%x", hash)
	}
	unsafe := []string{"/", "\\", ":", "?", "&", "=", "#", "<", ">", "|", "*", "\"", " "}
	for _, ch := range unsafe {
		key = strings.ReplaceAll(key, ch, "_")
	}
	return key
}
