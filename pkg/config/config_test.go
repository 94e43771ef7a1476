package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.True(t, cfg.Generator.Strict)
	assert.Equal(t, 50, cfg.Generator.MaxChannels)
	assert.Equal(t, PreviewStoreMemory, cfg.Preview.Store)
	assert.Equal(t, 30*time.Minute, cfg.Preview.TTL)
	assert.Equal(t, time.Hour, cfg.Exports.SignedURLTTL)
	assert.Equal(t, 50, cfg.Exports.MaxBatchSize)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PREVIEW_STORE", " Redis ")
	t.Setenv("PREVIEW_TTL", "5m")
	t.Setenv("GENERATOR_STRICT", "false")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, ,https://b.example.com")
	t.Setenv("EXPORTS_SIGNED_URL_TTL", "not-a-duration")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, PreviewStoreRedis, cfg.Preview.Store)
	assert.Equal(t, 5*time.Minute, cfg.Preview.TTL)
	assert.False(t, cfg.Generator.Strict)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, time.Hour, cfg.Exports.SignedURLTTL)
}

func TestUnknownPreviewStoreFallsBackToMemory(t *testing.T) {
	t.Setenv("PREVIEW_STORE", "etcd")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, PreviewStoreMemory, cfg.Preview.Store)
}
