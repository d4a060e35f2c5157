package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, "mysql", cfg.Database.Driver)
		assert.Equal(t, 3306, cfg.Database.Port)
		assert.Equal(t, "info", cfg.Log.Level)
		assert.Equal(t, "member-api", cfg.Log.Service)
		assert.Equal(t, "member-photos", cfg.Storage.Bucket)
		assert.Equal(t, int64(-1), cfg.Stats.PublicGroupID)
		assert.Equal(t, "createdBy,updatedBy", cfg.Stats.SecureFields)
		assert.True(t, cfg.Metrics.Enabled)
		assert.Equal(t, "/metrics", cfg.Metrics.Path)
	})

	t.Run("Env overrides", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "9090")
		t.Setenv("DATABASE_DRIVER", "postgres")
		t.Setenv("STATS_PUBLIC_GROUP_ID", "7")

		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "9090", cfg.Server.Port)
		assert.Equal(t, "postgres", cfg.Database.Driver)
		assert.Equal(t, int64(7), cfg.Stats.PublicGroupID)
	})

	t.Run("Dotenv file", func(t *testing.T) {
		dir := t.TempDir()
		content := "LOG_LEVEL=debug\nDATABASE_NAME=members_test\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600))
		t.Cleanup(func() {
			os.Unsetenv("LOG_LEVEL")
			os.Unsetenv("DATABASE_NAME")
		})

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)

		assert.Equal(t, "debug", cfg.Log.Level)
		assert.Equal(t, "members_test", cfg.Database.Name)
	})
}

func TestValidate(t *testing.T) {
	t.Run("Unknown driver", func(t *testing.T) {
		t.Setenv("DATABASE_DRIVER", "oracle")
		_, err := LoadConfig(t.TempDir())
		assert.ErrorContains(t, err, `unsupported database driver "oracle"`)
	})

	t.Run("Unknown environment", func(t *testing.T) {
		t.Setenv("SERVER_ENVIRONMENT", "staging")
		_, err := LoadConfig(t.TempDir())
		assert.ErrorContains(t, err, "unsupported server environment")
	})

	t.Run("Relative metrics path", func(t *testing.T) {
		t.Setenv("METRICS_PATH", "metrics")
		_, err := LoadConfig(t.TempDir())
		assert.ErrorContains(t, err, "metrics path must start with /")
	})
}
