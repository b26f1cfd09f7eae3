package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docmap/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.Mapping.MaxRows)
	assert.False(t, cfg.Review.Strict)
	assert.Equal(t, "heuristic", cfg.Assist.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.Assist.Model)
	assert.False(t, cfg.DB.Enabled)
	assert.Equal(t, "noop", cfg.Email.Provider)
	assert.Equal(t, 4, cfg.Trigger.Concurrency)
	assert.Empty(t, cfg.Catalog.Path)
	assert.NotEmpty(t, cfg.CORS.AllowedOrigins)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DOCMAP_MAPPING_MAX_ROWS", "20")
	t.Setenv("DOCMAP_REVIEW_STRICT", "true")
	t.Setenv("DOCMAP_ASSIST_PROVIDER", "GATEWAY")
	t.Setenv("DOCMAP_ASSIST_GATEWAY_URL", "https://gw.example.com")
	t.Setenv("DOCMAP_CORS_ALLOWED_ORIGINS", " https://a.example.com , ,https://b.example.com")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.Mapping.MaxRows)
	assert.True(t, cfg.Review.Strict)
	assert.Equal(t, "gateway", cfg.Assist.Provider)
	assert.Equal(t, "https://gw.example.com", cfg.Assist.GatewayURL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORS.AllowedOrigins)
}

func TestLoad_PortFallback(t *testing.T) {
	t.Setenv("PORT", "9999")
	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Port)
}

func TestLoad_RejectsUnknownAssistProvider(t *testing.T) {
	t.Setenv("DOCMAP_ASSIST_PROVIDER", "oracle")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestLoad_RejectsNonPositiveMaxRows(t *testing.T) {
	t.Setenv("DOCMAP_MAPPING_MAX_ROWS", "0")
	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	db := config.DBConfig{User: "u", Password: "p", Host: "h", Port: 5432, Name: "n", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@h:5432/n?sslmode=disable", db.DSN())
}
