package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunCLI_Help(t *testing.T) {
	require.NoError(t, runCLI(nil))
	require.NoError(t, runCLI([]string{"help"}))
	require.NoError(t, runCLI([]string{"version"}))
}

func TestRunCLI_UnknownCommand(t *testing.T) {
	t.Setenv("NOTION_TOKEN", "secret_abc")
	t.Setenv("NOTION_CACHE_DIR", t.TempDir())
	err := runCLI([]string{"frobnicate"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown command")
}

func TestRunCLI_MissingToken(t *testing.T) {
	t.Setenv("NOTION_TOKEN", "")
	err := runCLI([]string{"me"})
	require.Error(t, err)
}

func TestRunCLI_UsageErrors(t *testing.T) {
	t.Setenv("NOTION_TOKEN", "secret_abc")
	t.Setenv("NOTION_CACHE_DIR", t.TempDir())

	for _, cmd := range []string{"user", "page", "db", "query", "blocks", "search"} {
		err := runCLI([]string{cmd})
		require.Error(t, err, cmd)
		require.Contains(t, err.Error(), "usage:", cmd)
	}
}
