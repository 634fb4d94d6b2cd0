package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
		assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
		assert.Equal(t, "deal-atlas.db", cfg.Store.Path)
		assert.False(t, cfg.Sync.Enabled)
		assert.Equal(t, "@every 1h", cfg.Sync.Schedule)
		assert.Equal(t, 6, cfg.Forecast.DefaultMonths)
	})

	t.Run("yaml file", func(t *testing.T) {
		// No indentation inside the backtick block to avoid YAML parsing errors
		path := writeFile(t, "deal-atlas.yaml", `server:
  host: "127.0.0.1"
  port: 9090
  shutdown_timeout: "3s"
store:
  path: "/var/lib/deal-atlas/deals.db"
sync:
  enabled: true
  schedule: "0 */6 * * *"
  profile: "hubspot"
forecast:
  default_months: 12`)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
		assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
		assert.Equal(t, "/var/lib/deal-atlas/deals.db", cfg.Store.Path)
		assert.True(t, cfg.Sync.Enabled)
		assert.Equal(t, "0 */6 * * *", cfg.Sync.Schedule)
		assert.Equal(t, "hubspot", cfg.Sync.Profile)
		assert.Equal(t, 12, cfg.Forecast.DefaultMonths)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("DEAL_ATLAS_SERVER_PORT", "7070")
		t.Setenv("DEAL_ATLAS_FORECAST_DEFAULT_MONTHS", "3")

		cfg, err := Load("")
		require.NoError(t, err)
		assert.Equal(t, 7070, cfg.Server.Port)
		assert.Equal(t, 3, cfg.Forecast.DefaultMonths)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("invalid values", func(t *testing.T) {
		path := writeFile(t, "bad.yaml", `forecast:
  default_months: 0`)

		_, err := Load(path)
		assert.ErrorContains(t, err, "default_months")

		path = writeFile(t, "long.yaml", `forecast:
  default_months: 500`)

		_, err = Load(path)
		assert.ErrorContains(t, err, "between 1 and 120")
	})
}

func TestRegistry(t *testing.T) {
	path := writeFile(t, ".dealatlascfg", `[crm]
driver = pgx
dsn = postgres://reader@localhost:5432/sales

[legacy]
dsn = postgres://reader@legacy:5432/crm

[empty]
`)

	registry, err := NewRegistry(path)
	require.NoError(t, err)

	profiles, err := registry.GetProfiles(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []string{"crm", "legacy"}, profiles)

	t.Run("explicit driver", func(t *testing.T) {
		src, err := registry.GetSource(t.Context(), "crm")
		require.NoError(t, err)
		assert.Equal(t, Source{Name: "crm", Driver: "pgx", DSN: "postgres://reader@localhost:5432/sales"}, src)
	})

	t.Run("default driver", func(t *testing.T) {
		src, err := registry.GetSource(t.Context(), "legacy")
		require.NoError(t, err)
		assert.Equal(t, DefaultSourceDriver, src.Driver)
	})

	t.Run("unknown profile", func(t *testing.T) {
		_, err := registry.GetSource(t.Context(), "nope")
		assert.ErrorContains(t, err, "not found")
	})

	t.Run("profile without dsn", func(t *testing.T) {
		_, err := registry.GetSource(t.Context(), "empty")
		assert.Error(t, err)
	})
}
