package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `{"port": 8080}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, "info", cfg.LogConfig.Level)
	require.Equal(t, int64(20<<20), cfg.MaxUploadBytes)
	require.Equal(t, "0 * * * *", cfg.StatsCron)
	require.NotEmpty(t, cfg.AI.Groq.Model)
	require.NotEmpty(t, cfg.AI.OpenAI.Model)
}

func TestLoad_PortRequired(t *testing.T) {
	path := writeConfig(t, `{}`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoad_EnvCredentialOverride(t *testing.T) {
	t.Setenv("SOFDESK_GROQ_API_KEY", "env-groq-key")
	t.Setenv("SOFDESK_OPENAI_API_KEY", "env-openai-key")

	path := writeConfig(t, `{"port": 8080, "ai": {"groq": {"api_key": "file-key"}}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "env-groq-key", cfg.AI.Groq.APIKey)
	require.Equal(t, "env-openai-key", cfg.AI.OpenAI.APIKey)
}

func TestLoad_FileKeysKeptWithoutEnv(t *testing.T) {
	path := writeConfig(t, `{"port": 8080, "ai": {"groq": {"api_key": "file-key"}}}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "file-key", cfg.AI.Groq.APIKey)
}
