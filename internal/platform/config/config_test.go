package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr())
	assert.Equal(t, 30*time.Second, cfg.Herd.Timeout)
	assert.Equal(t, 1500*time.Millisecond, cfg.UI.NavigateDelay)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Empty(t, cfg.Cache.RedisAddr)
	assert.True(t, cfg.Stub.Envelope)
}

func TestLoad_EnvAndLegacyVars(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DSN", "postgres://localhost/herd")
	t.Setenv("ANIMALS_HERD_BASE_URL", "https://gateway.example.com/api")
	t.Setenv("ANIMALS_CACHE_REDIS_ADDR", "localhost:6379")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr())
	assert.Equal(t, "postgres://localhost/herd", cfg.Stub.DBDSN)
	assert.Equal(t, "https://gateway.example.com/api", cfg.Herd.BaseURL)
	assert.Equal(t, "localhost:6379", cfg.Cache.RedisAddr)
}

func TestLoad_FileThenFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "animals.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
herd:
  base_url: https://file.example.com/api
  timeout: 5s
log:
  level: debug
ui:
  navigate_delay: 0s
`), 0o644))

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Flags(fs)
	require.NoError(t, fs.Parse([]string{"--config", path, "--log.level", "warn"}))

	cfg, err := Load(fs)
	require.NoError(t, err)

	assert.Equal(t, "https://file.example.com/api", cfg.Herd.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Herd.Timeout)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Zero(t, cfg.UI.NavigateDelay)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ANIMALS_HERD_RETRY_COUNT", "-1")

	_, err := Load(nil)
	require.Error(t, err)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	Flags(fs)
	require.NoError(t, fs.Parse([]string{"--config", filepath.Join(t.TempDir(), "nope.yaml")}))

	_, err := Load(fs)
	require.Error(t, err)
}
