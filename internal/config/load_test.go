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

	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, "http://localhost:11434", cfg.Ollama.BaseURL)
	assert.Equal(t, "/api/chat", cfg.Ollama.ChatPath)
	assert.Equal(t, "/api/tags", cfg.Ollama.HealthPath)
	assert.Equal(t, 3*time.Second, cfg.Ollama.ProbeTimeout)
	assert.Equal(t, 120*time.Second, cfg.Ollama.GenerateTimeout)
	assert.Equal(t, 3, cfg.Pipeline.Concurrency)
	assert.Equal(t, 5, cfg.Pipeline.MinDescendants)
	assert.Equal(t, 10, cfg.Pipeline.MaxThreads)
	assert.Empty(t, cfg.Cache.Path)
}

func TestLoadProbeAndGenerateTimeoutsDiffer(t *testing.T) {
	// The two budgets serve different call sites and must never
	// accidentally collapse into one value.
	cfg, err := Load("")
	require.NoError(t, err)
	assert.NotEqual(t, cfg.Ollama.ProbeTimeout, cfg.Ollama.GenerateTimeout)
	assert.Less(t, cfg.Ollama.ProbeTimeout, cfg.Ollama.GenerateTimeout)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  log_level: debug
ollama:
  base_url: http://inference:11434
  model: llama3.2:3b
pipeline:
  concurrency: 5
cache:
  path: /tmp/feedlens.db
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "http://inference:11434", cfg.Ollama.BaseURL)
	assert.Equal(t, "llama3.2:3b", cfg.Ollama.Model)
	assert.Equal(t, 5, cfg.Pipeline.Concurrency)
	assert.Equal(t, "/tmp/feedlens.db", cfg.Cache.Path)

	// Unset fields keep their defaults.
	assert.Equal(t, "/api/chat", cfg.Ollama.ChatPath)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("FEEDLENS_OLLAMA_MODEL", "qwen2.5:7b")
	t.Setenv("FEEDLENS_PIPELINE_CONCURRENCY", "8")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "qwen2.5:7b", cfg.Ollama.Model)
	assert.Equal(t, 8, cfg.Pipeline.Concurrency)
}

func TestLoadInvalidLogLevel(t *testing.T) {
	t.Setenv("FEEDLENS_SERVER_LOG_LEVEL", "loud")

	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
