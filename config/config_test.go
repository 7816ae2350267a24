package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file returns defaults", func(t *testing.T) {
		cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		require.NoError(t, err)
		assert.Equal(t, Default(), cfg)
	})

	t.Run("partial file keeps defaults for unset fields", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		body := "storage:\n  data_dir: /srv/videos\nretrieval:\n  top_k: 8\n"
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "/srv/videos", cfg.Storage.DataDir)
		assert.Equal(t, 8, cfg.Retrieval.TopK)
		assert.Equal(t, 256, cfg.Pipeline.TokenBudget)
		assert.Equal(t, "embeddinggemma", cfg.AI.EmbeddingModel)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("malformed yaml errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("storage: [\n"), 0o644))

		_, err := Load(path)
		assert.Error(t, err)
	})
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Storage.DataDir = "/tmp/recall"
	cfg.AI.ChatModel = "qwen2.5:7b"
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestAIToggles(t *testing.T) {
	t.Run("default on", func(t *testing.T) {
		var c AIConfig
		assert.True(t, c.SpanExtractorEnabled())
		assert.True(t, c.GeneratorEnabled())
	})

	t.Run("explicit off", func(t *testing.T) {
		off := false
		c := AIConfig{SpanExtractor: &off, Generator: &off}
		assert.False(t, c.SpanExtractorEnabled())
		assert.False(t, c.GeneratorEnabled())
	})
}

func TestResolvedLedgerPath(t *testing.T) {
	s := StorageConfig{DataDir: "data"}
	assert.Equal(t, filepath.Join("data", "ledger"), s.ResolvedLedgerPath())

	s.LedgerPath = "/var/lib/recall/ledger"
	assert.Equal(t, "/var/lib/recall/ledger", s.ResolvedLedgerPath())
}
