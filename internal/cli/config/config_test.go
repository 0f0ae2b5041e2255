package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inTempDir runs the test from an empty temporary directory so Load never
// picks up a stray metagraph.yml from the working tree.
func inTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "metagraph.yml"), []byte(content), 0o644))
}

func TestLoadDefaults(t *testing.T) {
	inTempDir(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "metagraph.db", cfg.Store.Path)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.False(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 30, cfg.Redis.TTLSeconds)
}

func TestLoadFromFile(t *testing.T) {
	dir := inTempDir(t)
	writeConfig(t, dir, `
store:
  driver: postgres
  url: postgres://localhost:5432/metagraph
server:
  host: 0.0.0.0
  port: 9090
redis:
  enabled: true
  addr: cache.internal:6379
  ttl_seconds: 120
`)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "postgres://localhost:5432/metagraph", cfg.Store.URL)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "cache.internal:6379", cfg.Redis.Addr)
	assert.Equal(t, 120, cfg.Redis.TTLSeconds)
}

func TestLoadValidation(t *testing.T) {
	t.Run("unknown driver", func(t *testing.T) {
		dir := inTempDir(t)
		writeConfig(t, dir, "store:\n  driver: oracle\n")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown store driver")
	})

	t.Run("postgres requires url", func(t *testing.T) {
		dir := inTempDir(t)
		writeConfig(t, dir, "store:\n  driver: postgres\n")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "store.url is required")
	})
}

func TestListenAddress(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Host: "127.0.0.1", Port: 8080}}
	assert.Equal(t, "127.0.0.1:8080", cfg.ListenAddress())
}
