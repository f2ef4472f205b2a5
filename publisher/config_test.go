package publisher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `{
		"base_url": "https://wp.test",
		"username": "admin",
		"app_password": "secret",
		"llm": {"provider": "openai", "model": "gpt-4o-mini", "api_key": "sk-x"},
		"server_addr": ":9090",
		"export_dir": "exports"
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.True(t, cfg.HasCredentials())
	assert.Equal(t, "https://wp.test", cfg.BaseURL)
	require.NotNil(t, cfg.LLM)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, ":9090", cfg.ServerAddr)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	path := writeConfig(t, `{"base_url": "https://old.test", "username": "admin", "app_password": "secret"}`)
	t.Setenv("WP_BASE_URL", "https://new.test")
	t.Setenv("LLM_API_KEY", "sk-env")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://new.test", cfg.BaseURL)
	require.NotNil(t, cfg.LLM)
	assert.Equal(t, "sk-env", cfg.LLM.APIKey)
}

func TestLoadConfigMissingFileIsEnvOnly(t *testing.T) {
	t.Setenv("WP_BASE_URL", "https://env.test")
	t.Setenv("WP_USERNAME", "admin")
	t.Setenv("WP_APP_PASSWORD", "secret")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.True(t, cfg.HasCredentials())
}

func TestLoadConfigWithoutCredentials(t *testing.T) {
	path := writeConfig(t, `{"llm": {"provider": "openai", "model": "m", "api_key": "k"}}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	// Publishing is optional; generation-only setups are valid.
	assert.False(t, cfg.HasCredentials())
}
