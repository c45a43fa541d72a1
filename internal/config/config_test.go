package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("should use defaults without a config file", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		require.NoError(t, err)
		assert.Equal(t, ":8181", cfg.Server.Addr)
		assert.Equal(t, StoreFile, cfg.Store.Type)
		assert.Equal(t, "data/events.json", cfg.Store.File.Path)
		assert.Equal(t, 10, cfg.Store.Redis.MaxRetries)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, 3, cfg.Ranking.TopN)
		assert.Equal(t, 0.75, cfg.Ranking.IfNeededWeight)
	})

	t.Run("should override defaults from file and environment", func(t *testing.T) {
		// given
		path := filepath.Join(t.TempDir(), "application.yaml")
		yaml := "store:\n  type: redis\n  redis:\n    addr: redis:6379\nranking:\n  topn: 5\n"
		require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
		t.Setenv("GATHERTIME_RANKING_TOPN", "7")
		t.Setenv("GATHERTIME_DB_HOST", "db.internal")

		// when
		cfg, err := Load(path)

		// then
		require.NoError(t, err)
		assert.Equal(t, StoreRedis, cfg.Store.Type)
		assert.Equal(t, "redis:6379", cfg.Store.Redis.Addr)
		assert.Equal(t, "gathertime:event:", cfg.Store.Redis.Prefix)
		assert.Equal(t, 7, cfg.Ranking.TopN)
		assert.Equal(t, "db.internal", cfg.Database.Host)
	})

	t.Run("should fail on a malformed config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "application.yaml")
		require.NoError(t, os.WriteFile(path, []byte("store: [unclosed"), 0o600))

		_, err := Load(path)

		assert.Error(t, err)
	})
}
