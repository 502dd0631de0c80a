package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("ASSISTANT_SEARCH_GROUNDING", "false")
	t.Setenv("ACCESS_TOKEN_TTL", "2h")
	t.Setenv("REFRESH_TOKEN_TTL", "48")
	t.Setenv("INSTANCE_ID", "api.eu-1")

	cfg := Load()

	assert.Equal(t, "", cfg.Assistant.Model)
	assert.False(t, cfg.Assistant.SearchGrounding)
	assert.Equal(t, 2*time.Hour, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, 48*time.Hour, cfg.Auth.RefreshTokenTTL)
	assert.Equal(t, "api_eu-1", cfg.App.InstanceID)
}

func TestSanitizeInstanceID(t *testing.T) {
	assert.Equal(t, "local", sanitizeInstanceID(""))
	assert.Equal(t, "pod_7", sanitizeInstanceID("pod 7"))
}

func TestIsProduction(t *testing.T) {
	assert.True(t, (&Config{App: AppConfig{Environment: "production"}}).IsProduction())
	assert.False(t, (&Config{App: AppConfig{Environment: "development"}}).IsProduction())
}
