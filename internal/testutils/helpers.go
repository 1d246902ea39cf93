package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// WriteCatalog writes content to a file named name in a fresh temporary directory
// and returns its path. The extension of name selects the catalog format.
// It fails the test immediately on error.
func WriteCatalog(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "Failed to write catalog")

	return path
}

// SetupRedis starts an in-process Redis server for the duration of the test and
// returns a client connected to it.
func SetupRedis(t *testing.T) (*backend.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { _ = client.Close() })

	return client, mr
}
