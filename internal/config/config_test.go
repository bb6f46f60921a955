package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "loom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
resolver:
  max_iterations: 10
engine:
  max_retries: 5
  retry_backoff: 2s
llm:
  provider: ollama
  client:
    model: llama3
    base_url: http://localhost:11434
data:
  dir: /var/lib/loom/data
templates:
  dir: /etc/loom/templates
logging:
  level: debug
  format: json
defaults:
  character.name: the adventurer
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Resolver.MaxIterations)
	assert.Equal(t, 5, cfg.Engine.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.Engine.RetryBackoff)
	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "llama3", cfg.LLM.Client.Model)
	assert.Equal(t, "http://localhost:11434", cfg.LLM.Client.BaseURL)
	assert.Equal(t, "/var/lib/loom/data", cfg.Data.Dir)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "the adventurer", cfg.Defaults["character.name"])
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "llm:\n  provider: mock\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	def := DefaultConfig()
	assert.Equal(t, "mock", cfg.LLM.Provider)
	assert.Equal(t, def.Resolver.MaxIterations, cfg.Resolver.MaxIterations)
	assert.Equal(t, def.Engine.MaxRetries, cfg.Engine.MaxRetries)
	assert.Equal(t, def.Logging.Level, cfg.Logging.Level)
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeConfig(t, "resolver:\n  max_iterations: 0\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MaxIterations")
}

func TestLoad_InvalidProvider(t *testing.T) {
	path := writeConfig(t, "llm:\n  provider: carrier-pigeon\n")

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadWithDefaults_MissingFile(t *testing.T) {
	cfg, err := LoadWithDefaults(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestValidate_DefaultConfigValid(t *testing.T) {
	require.NoError(t, Validate(DefaultConfig()))
	require.Error(t, Validate(nil))
}

func TestNewLogger_Levels(t *testing.T) {
	logger := NewLogger(LoggingConfig{Level: "debug", Format: "json"})
	require.NotNil(t, logger)
	logger = NewLogger(LoggingConfig{Level: "weird"})
	require.NotNil(t, logger)
}
