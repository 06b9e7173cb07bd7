package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// clearEnv unsets keys for the duration of the test. t.Setenv registers the
// restore; the unset makes envDefault kick in.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t, "NOTION_VERSION", "NOTION_BASE_URL", "NOTION_CACHE_TTL",
		"NOTION_MAX_RETRIES", "PROXY_ADDR", "PROXY_ALLOWED_ORIGIN")
	t.Setenv("NOTION_TOKEN", "secret_abc")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "secret_abc", cfg.Token)
	require.Equal(t, "2022-06-28", cfg.Version)
	require.Equal(t, "https://api.notion.com", cfg.BaseURL)
	require.Equal(t, 5*time.Minute, cfg.CacheTTL)
	require.Equal(t, uint64(3), cfg.MaxRetries)
	require.Equal(t, ":8787", cfg.ProxyAddr)
	require.Equal(t, "*", cfg.AllowedOrigin)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("NOTION_TOKEN", "secret_abc")
	t.Setenv("NOTION_VERSION", "2022-02-22")
	t.Setenv("NOTION_BASE_URL", "http://localhost:9999")
	t.Setenv("NOTION_CACHE_TTL", "30s")
	t.Setenv("NOTION_MAX_RETRIES", "5")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "2022-02-22", cfg.Version)
	require.Equal(t, "http://localhost:9999", cfg.BaseURL)
	require.Equal(t, 30*time.Second, cfg.CacheTTL)
	require.Equal(t, uint64(5), cfg.MaxRetries)
}

func TestLoad_RejectsBadDuration(t *testing.T) {
	t.Setenv("NOTION_TOKEN", "secret_abc")
	t.Setenv("NOTION_CACHE_TTL", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Config{Token: "secret_abc", BaseURL: "https://api.notion.com"}
	require.NoError(t, cfg.Validate())

	cfg.Token = ""
	require.Error(t, cfg.Validate())

	cfg = Config{Token: "secret_abc"}
	require.Error(t, cfg.Validate())
}
