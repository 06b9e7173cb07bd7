package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyFor(t *testing.T) {
	key := KeyFor("/v1/users", nil)
	require.Equal(t, "v1_users", key)

	key = KeyFor("/v1/blocks/b1/children", map[string]string{"page_size": "25"})
	require.Equal(t, "v1_blocks_b1_children__page_size_25", key)
}

func TestKeyFor_ParamOrderInsensitive(t *testing.T) {
	a := KeyFor("/v1/users", map[string]string{"page_size": "25", "start_cursor": "c1"})
	b := KeyFor("/v1/users", map[string]string{"start_cursor": "c1", "page_size": "25"})
	require.Equal(t, a, b)
}

func TestKeyFor_FilenameSafe(t *testing.T) {
	key := KeyFor("/v1/search", map[string]string{"q": `a/b:c?d&e="f" g`})
	for _, ch := range []string{"/", ":", "?", "&", "=", "\"", " "} {
		require.NotContains(t, key, ch)
	}
}

func TestKeyFor_LongKeysAreHashed(t *testing.T) {
	key := KeyFor("/v1/databases/"+strings.Repeat("a", 300)+"/query", nil)
	require.True(t, strings.HasPrefix(key, "hash_"))
	require.Less(t, len(key), 64)
}
