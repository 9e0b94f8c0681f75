package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.ResearchModel)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.StructuringModel)
	assert.Equal(t, int64(4096), cfg.Agents.MaxResearchTokens)
	assert.Equal(t, 5, cfg.Agents.MaxWebSearches)
	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:8080"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("ENRICH_STORE_DRIVER", "sqlite")
	t.Setenv("ENRICH_ANTHROPIC_RESEARCH_MODEL", "claude-opus-4-6")
	t.Setenv("ENRICH_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "claude-opus-4-6", cfg.Anthropic.ResearchModel)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	cfg := &Config{
		Store:     StoreConfig{Driver: "postgres", DatabaseURL: "postgres://localhost/leads"},
		Anthropic: AnthropicConfig{Key: "sk-test"},
	}
	assert.NoError(t, cfg.Validate())

	cfg.Anthropic.Key = ""
	assert.Error(t, cfg.Validate())

	cfg.Anthropic.Key = "sk-test"
	cfg.Store.DatabaseURL = ""
	assert.Error(t, cfg.Validate())

	// sqlite falls back to a local file, so no URL is required.
	cfg.Store.Driver = "sqlite"
	assert.NoError(t, cfg.Validate())
}

func TestInitLogger(t *testing.T) {
	assert.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.NoError(t, InitLogger(LogConfig{Level: "info", Format: "json"}))
	assert.Error(t, InitLogger(LogConfig{Level: "nope", Format: "json"}))
}
