package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "souqfx", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.True(t, cfg.Server.RateLimit.Enabled)

	assert.Equal(t, "data", cfg.Store.Dir)
	assert.Equal(t, "products.csv", cfg.Store.ProductsFile)
	assert.Equal(t, "orders.csv", cfg.Store.OrdersFile)
	assert.True(t, cfg.Store.Retry.Enabled)
	assert.Equal(t, 3, cfg.Store.Retry.MaxAttempts)

	assert.True(t, cfg.Catalog.SeedOnEmpty)

	assert.Equal(t, 2, cfg.Processor.PoolSize)
	assert.Equal(t, 16, cfg.Processor.QueueSize)
	assert.Equal(t, 500*time.Millisecond, cfg.Processor.StepDelay)
	assert.Equal(t, 3*time.Second, cfg.Processor.ResultDelay)
	assert.Equal(t, 10*time.Second, cfg.Processor.AwaitTimeout)
	assert.Equal(t, 5*time.Second, cfg.Processor.ShutdownGrace)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `app:
  name: souqfx-test
  env: production
server:
  port: "9001"
processor:
  pool_size: 4
  step_delay: 10ms
store:
  dir: testdata
catalog:
  seed_on_empty: false
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "souqfx-test", cfg.App.Name)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9001", cfg.Server.Port)
	assert.Equal(t, 4, cfg.Processor.PoolSize)
	assert.Equal(t, 10*time.Millisecond, cfg.Processor.StepDelay)
	assert.Equal(t, "testdata", cfg.Store.Dir)
	assert.False(t, cfg.Catalog.SeedOnEmpty)

	// Untouched keys keep their defaults.
	assert.Equal(t, 16, cfg.Processor.QueueSize)
	assert.Equal(t, "orders.csv", cfg.Store.OrdersFile)
}

func TestLoadBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app: [not: closed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SOUQFX_SERVER_PORT", "7070")
	t.Setenv("SOUQFX_PROCESSOR_POOL_SIZE", "8")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, 8, cfg.Processor.PoolSize)
}

func TestEnvFlags(t *testing.T) {
	cfg := &Config{App: AppConfig{Env: "development"}}
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg.App.Env = "production"
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
}
